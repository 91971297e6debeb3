// Package catalog holds the static, curated career data: learning resources
// per role, interview question banks, and skill playlists.
package catalog

import (
	"strings"

	"github.com/internai/internai/internal/model"
	"github.com/internai/internai/internal/skill"
)

// DefaultRole is returned by lookups that match nothing.
const DefaultRole = "Full Stack Developer"

type roleBundle struct {
	role   string
	bundle model.ResourceBundle
}

func r(name, url string) model.Resource { return model.Resource{Name: name, URL: url} }

// Declaration order matters: fuzzy lookups return the first overlapping role.
var bundles = []roleBundle{
	{"Full Stack Developer", model.ResourceBundle{
		YouTube: []model.Resource{
			r("freeCodeCamp Full Stack Course", "https://www.youtube.com/watch?v=nu_pCVPKzTk"),
			r("Traversy Media MERN Stack", "https://www.youtube.com/watch?v=-0exw-9YJBo"),
			r("Web Dev Simplified", "https://www.youtube.com/@WebDevSimplified"),
		},
		Courses: []model.Resource{
			r("The Odin Project (Free)", "https://www.theodinproject.com/"),
			r("freeCodeCamp Full Stack", "https://www.freecodecamp.org/learn/full-stack-developer/"),
			r("Full Stack Open (University of Helsinki)", "https://fullstackopen.com/en/"),
		},
		Certifications: []model.Resource{
			r("Meta Front-End Developer", "https://www.coursera.org/professional-certificates/meta-front-end-developer"),
			r("Meta Back-End Developer", "https://www.coursera.org/professional-certificates/meta-back-end-developer"),
			r("IBM Full Stack Cloud Developer", "https://www.coursera.org/professional-certificates/ibm-full-stack-cloud-developer"),
		},
		Documentation: []model.Resource{
			r("MDN Web Docs", "https://developer.mozilla.org/"),
			r("React Documentation", "https://react.dev/"),
			r("Node.js Docs", "https://nodejs.org/docs/"),
		},
	}},
	{"Visual Designer", model.ResourceBundle{
		YouTube: []model.Resource{
			r("The Futur - Design Principles", "https://www.youtube.com/@TheFuturIsHere"),
			r("Flux Academy - UI/UX Design", "https://www.youtube.com/@FluxAcademy"),
			r("DesignCourse", "https://www.youtube.com/@DesignCourse"),
		},
		Courses: []model.Resource{
			r("Google UX Design Professional Certificate", "https://www.coursera.org/professional-certificates/google-ux-design"),
			r("Interaction Design Foundation", "https://www.interaction-design.org/"),
			r("Canva Design School (Free)", "https://www.canva.com/designschool/"),
		},
		Certifications: []model.Resource{
			r("Google UX Design Certificate", "https://www.coursera.org/professional-certificates/google-ux-design"),
			r("Adobe Certified Professional", "https://www.adobe.com/training/certification.html"),
			r("Nielsen Norman Group UX Certification", "https://www.nngroup.com/ux-certification/"),
		},
		Documentation: []model.Resource{
			r("Material Design Guidelines", "https://m3.material.io/"),
			r("Apple Human Interface Guidelines", "https://developer.apple.com/design/human-interface-guidelines/"),
			r("Figma Learn", "https://www.figma.com/resources/learn-design/"),
		},
	}},
	{"Frontend Developer", model.ResourceBundle{
		YouTube: []model.Resource{
			r("freeCodeCamp React Course", "https://www.youtube.com/watch?v=bMknfKXIFA8"),
			r("Net Ninja React Tutorials", "https://www.youtube.com/playlist?list=PL4cUxeGkcC9gZD-Tvwfod2gaISzfRiP9d"),
			r("JavaScript Mastery", "https://www.youtube.com/@javascriptmastery"),
		},
		Courses: []model.Resource{
			r("Frontend Masters", "https://frontendmasters.com/"),
			r("Scrimba Frontend Career Path", "https://scrimba.com/learn/frontend"),
			r("freeCodeCamp Responsive Web Design", "https://www.freecodecamp.org/learn/2022/responsive-web-design/"),
		},
		Certifications: []model.Resource{
			r("Meta Front-End Developer", "https://www.coursera.org/professional-certificates/meta-front-end-developer"),
			r("W3Schools Frontend Certification", "https://www.w3schools.com/cert/cert_frontend.asp"),
		},
		Documentation: []model.Resource{
			r("MDN Web Docs", "https://developer.mozilla.org/"),
			r("React Docs", "https://react.dev/"),
			r("CSS-Tricks", "https://css-tricks.com/"),
		},
	}},
	{"Backend Developer", model.ResourceBundle{
		YouTube: []model.Resource{
			r("freeCodeCamp Node.js Full Course", "https://www.youtube.com/watch?v=Oe421EPjeBE"),
			r("Traversy Media Node.js", "https://www.youtube.com/@TraversyMedia"),
			r("Programming with Mosh", "https://www.youtube.com/@programmingwithmosh"),
		},
		Courses: []model.Resource{
			r("The Odin Project NodeJS", "https://www.theodinproject.com/paths/full-stack-javascript/courses/nodejs"),
			r("freeCodeCamp Backend Development", "https://www.freecodecamp.org/learn/back-end-development-and-apis/"),
			r("Udemy: Node.js Topics", "https://www.udemy.com/topic/nodejs/"),
		},
		Certifications: []model.Resource{
			r("Meta Back-End Developer", "https://www.coursera.org/professional-certificates/meta-back-end-developer"),
			r("MongoDB Certified Developer", "https://learn.mongodb.com/catalog"),
		},
		Documentation: []model.Resource{
			r("Node.js Documentation", "https://nodejs.org/docs/"),
			r("Express.js Guide", "https://expressjs.com/"),
			r("MongoDB Manual", "https://www.mongodb.com/docs/"),
		},
	}},
	{"Data Scientist", model.ResourceBundle{
		YouTube: []model.Resource{
			r("freeCodeCamp Data Science", "https://www.youtube.com/watch?v=ua-CiDNNj30"),
			r("StatQuest", "https://www.youtube.com/@statquest"),
			r("3Blue1Brown (Math)", "https://www.youtube.com/@3blue1brown"),
		},
		Courses: []model.Resource{
			r("IBM Data Science Professional", "https://www.coursera.org/professional-certificates/ibm-data-science"),
			r("Google Data Analytics", "https://www.coursera.org/professional-certificates/google-data-analytics"),
			r("Kaggle Learn", "https://www.kaggle.com/learn"),
		},
		Certifications: []model.Resource{
			r("IBM Data Science Professional", "https://www.coursera.org/professional-certificates/ibm-data-science"),
			r("Google Data Analytics", "https://www.coursera.org/professional-certificates/google-data-analytics"),
		},
		Documentation: []model.Resource{
			r("Python Documentation", "https://docs.python.org/3/"),
			r("Pandas Documentation", "https://pandas.pydata.org/docs/"),
			r("Scikit-learn User Guide", "https://scikit-learn.org/stable/user_guide.html"),
		},
	}},
	{"Mobile Developer", model.ResourceBundle{
		YouTube: []model.Resource{
			r("freeCodeCamp React Native", "https://www.youtube.com/watch?v=obH0Po_RdWk"),
			r("Flutter Tutorial for Beginners", "https://www.youtube.com/watch?v=1ukSR1GRtMU"),
			r("iOS Academy", "https://www.youtube.com/@iOSAcademy"),
		},
		Courses: []model.Resource{
			r("Meta React Native Specialization", "https://www.coursera.org/specializations/meta-react-native"),
			r("Udemy: Flutter & Dart", "https://www.udemy.com/topic/flutter/"),
			r("freeCodeCamp Mobile Development", "https://www.freecodecamp.org/news/tag/mobile-development/"),
		},
		Certifications: []model.Resource{
			r("Meta React Native Certificate", "https://www.coursera.org/specializations/meta-react-native"),
			r("Google Associate Android Developer", "https://developers.google.com/certification/associate-android-developer"),
		},
		Documentation: []model.Resource{
			r("React Native Docs", "https://reactnative.dev/docs/getting-started"),
			r("Flutter Documentation", "https://docs.flutter.dev/"),
			r("Swift Documentation", "https://developer.apple.com/documentation/swift"),
		},
	}},
	{"DevOps Engineer", model.ResourceBundle{
		YouTube: []model.Resource{
			r("freeCodeCamp DevOps Course", "https://www.youtube.com/watch?v=j5Zsa_eOXeY"),
			r("TechWorld with Nana", "https://www.youtube.com/@TechWorldwithNana"),
			r("DevOps Toolkit", "https://www.youtube.com/@DevOpsToolkit"),
		},
		Courses: []model.Resource{
			r("Udemy: Docker & Kubernetes", "https://www.udemy.com/topic/docker/"),
			r("Linux Foundation DevOps", "https://training.linuxfoundation.org/training/devops-and-sre-fundamentals/"),
			r("AWS DevOps Engineer", "https://aws.amazon.com/training/learn-about/devops/"),
		},
		Certifications: []model.Resource{
			r("AWS Certified DevOps Engineer", "https://aws.amazon.com/certification/certified-devops-engineer-professional/"),
			r("Certified Kubernetes Administrator", "https://www.cncf.io/certification/cka/"),
			r("Docker Certified Associate", "https://training.mirantis.com/certification/dca-certification-exam/"),
		},
		Documentation: []model.Resource{
			r("Docker Documentation", "https://docs.docker.com/"),
			r("Kubernetes Docs", "https://kubernetes.io/docs/"),
			r("AWS Documentation", "https://docs.aws.amazon.com/"),
		},
	}},
	{"Cloud Engineer", model.ResourceBundle{
		YouTube: []model.Resource{
			r("freeCodeCamp AWS Course", "https://www.youtube.com/watch?v=ulprqHHWlng"),
			r("A Cloud Guru", "https://www.youtube.com/@AcloudGuru"),
			r("Google Cloud Tech", "https://www.youtube.com/@GoogleCloudTech"),
		},
		Courses: []model.Resource{
			r("AWS Training", "https://aws.amazon.com/training/"),
			r("Google Cloud Skills Boost", "https://www.cloudskillsboost.google/"),
			r("Microsoft Learn Azure", "https://learn.microsoft.com/en-us/training/azure/"),
		},
		Certifications: []model.Resource{
			r("AWS Certified Solutions Architect", "https://aws.amazon.com/certification/certified-solutions-architect-associate/"),
			r("Google Cloud Professional", "https://cloud.google.com/learn/certification"),
			r("Azure Administrator", "https://learn.microsoft.com/en-us/certifications/azure-administrator/"),
		},
		Documentation: []model.Resource{
			r("AWS Documentation", "https://docs.aws.amazon.com/"),
			r("Google Cloud Docs", "https://cloud.google.com/docs"),
			r("Azure Documentation", "https://learn.microsoft.com/en-us/azure/"),
		},
	}},
	{"Cybersecurity Analyst", model.ResourceBundle{
		YouTube: []model.Resource{
			r("freeCodeCamp Ethical Hacking", "https://www.youtube.com/watch?v=3Kq1MIfTWCE"),
			r("NetworkChuck", "https://www.youtube.com/@NetworkChuck"),
			r("John Hammond", "https://www.youtube.com/@_JohnHammond"),
		},
		Courses: []model.Resource{
			r("Google Cybersecurity Professional", "https://www.coursera.org/professional-certificates/google-cybersecurity"),
			r("TryHackMe Learning Paths", "https://tryhackme.com/paths"),
			r("Cybrary Free Courses", "https://www.cybrary.it/"),
		},
		Certifications: []model.Resource{
			r("CompTIA Security+", "https://www.comptia.org/certifications/security"),
			r("Certified Ethical Hacker (CEH)", "https://www.eccouncil.org/train-certify/certified-ethical-hacker-ceh/"),
			r("Google Cybersecurity Certificate", "https://www.coursera.org/professional-certificates/google-cybersecurity"),
		},
		Documentation: []model.Resource{
			r("OWASP Top 10", "https://owasp.org/www-project-top-ten/"),
			r("NIST Cybersecurity Framework", "https://www.nist.gov/cyberframework"),
			r("Kali Linux Documentation", "https://www.kali.org/docs/"),
		},
	}},
	{"Product Manager", model.ResourceBundle{
		YouTube: []model.Resource{
			r("Product School", "https://www.youtube.com/@ProductSchool"),
			r("Lenny's Podcast", "https://www.youtube.com/@LennysPodcast"),
			r("freeCodeCamp Product Management", "https://www.youtube.com/watch?v=G9sX5fZHJD8"),
		},
		Courses: []model.Resource{
			r("Google Project Management", "https://www.coursera.org/professional-certificates/google-project-management"),
			r("Product School Free Courses", "https://productschool.com/free-product-management-resources"),
			r("Udemy: Product Management", "https://www.udemy.com/topic/product-management/"),
		},
		Certifications: []model.Resource{
			r("Google Project Management", "https://www.coursera.org/professional-certificates/google-project-management"),
			r("SAFe Product Owner", "https://scaledagile.com/training/safe-product-owner-product-manager/"),
		},
		Documentation: []model.Resource{
			r("Product Management Handbook", "https://handbook.productmanager.com/"),
			r("Pragmatic Institute Resources", "https://www.pragmaticinstitute.com/resources/"),
			r("Mind the Product", "https://www.mindtheproduct.com/"),
		},
	}},
}

// Roles lists the catalog roles in declaration order.
func Roles() []string {
	out := make([]string, len(bundles))
	for i, b := range bundles {
		out[i] = b.role
	}
	return out
}

// ForRole returns the curated bundle for role. Lookup is an exact match on the
// trimmed role, then the first role (in declaration order) that contains or is
// contained by it case-insensitively, then the Full Stack Developer bundle.
func ForRole(role string) model.ResourceBundle {
	i := lookup(role, len(bundles), func(i int) string { return bundles[i].role })
	if i < 0 {
		i = indexOfRole(DefaultRole)
	}
	return clone(bundles[i].bundle)
}

// MatchRole reports which catalog role a lookup for role resolves to.
func MatchRole(role string) string {
	i := lookup(role, len(bundles), func(i int) string { return bundles[i].role })
	if i < 0 {
		return DefaultRole
	}
	return bundles[i].role
}

// Flatten lists a bundle's links in category order: videos, courses,
// certifications, documentation.
func Flatten(b model.ResourceBundle) []model.Resource {
	out := make([]model.Resource, 0, len(b.YouTube)+len(b.Courses)+len(b.Certifications)+len(b.Documentation))
	out = append(out, b.YouTube...)
	out = append(out, b.Courses...)
	out = append(out, b.Certifications...)
	out = append(out, b.Documentation...)
	return out
}

// lookup implements the shared exact-then-substring policy over n keyed entries.
// It returns -1 when nothing matches.
func lookup(role string, n int, key func(int) string) int {
	trimmed := strings.TrimSpace(role)
	for i := 0; i < n; i++ {
		if key(i) == trimmed {
			return i
		}
	}
	if trimmed == "" {
		return -1
	}
	for i := 0; i < n; i++ {
		if skill.Overlaps(key(i), trimmed) {
			return i
		}
	}
	return -1
}

func indexOfRole(role string) int {
	for i, b := range bundles {
		if b.role == role {
			return i
		}
	}
	return 0
}

// clone copies the slices so callers cannot mutate the static catalog.
func clone(b model.ResourceBundle) model.ResourceBundle {
	return model.ResourceBundle{
		YouTube:        append([]model.Resource(nil), b.YouTube...),
		Courses:        append([]model.Resource(nil), b.Courses...),
		Certifications: append([]model.Resource(nil), b.Certifications...),
		Documentation:  append([]model.Resource(nil), b.Documentation...),
	}
}
