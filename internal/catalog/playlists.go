package catalog

import (
	"github.com/internai/internai/internal/linkcheck"
	"github.com/internai/internai/internal/model"
	"github.com/internai/internai/internal/skill"
)

type skillPlaylist struct {
	skill    string
	playlist model.Resource
}

var playlists = []skillPlaylist{
	{"javascript", r("JavaScript Full Course - freeCodeCamp", "https://www.youtube.com/watch?v=PkZNo7MFNFg")},
	{"python", r("Python Full Course - freeCodeCamp", "https://www.youtube.com/watch?v=rfscVS0vtbw")},
	{"java", r("Java Full Course - freeCodeCamp", "https://www.youtube.com/watch?v=grEKMHGYyns")},
	{"c++", r("C++ Full Course - freeCodeCamp", "https://www.youtube.com/watch?v=vLnPwxZdW4Y")},
	{"typescript", r("TypeScript Full Course - freeCodeCamp", "https://www.youtube.com/watch?v=gp5H0Vw39yw")},
	{"html", r("HTML Full Course - freeCodeCamp", "https://www.youtube.com/watch?v=pQN-pnXPaVg")},
	{"css", r("CSS Full Course - freeCodeCamp", "https://www.youtube.com/watch?v=1Rs2ND1ryYc")},
	{"react", r("React Full Course - freeCodeCamp", "https://www.youtube.com/watch?v=bMknfKXIFA8")},
	{"react.js", r("React Full Course - freeCodeCamp", "https://www.youtube.com/watch?v=bMknfKXIFA8")},
	{"node", r("Node.js Full Course - freeCodeCamp", "https://www.youtube.com/watch?v=Oe421EPjeBE")},
	{"node.js", r("Node.js Full Course - freeCodeCamp", "https://www.youtube.com/watch?v=Oe421EPjeBE")},
	{"express", r("Express.js Full Course - freeCodeCamp", "https://www.youtube.com/watch?v=Oe421EPjeBE")},
	{"angular", r("Angular Full Course - freeCodeCamp", "https://www.youtube.com/watch?v=2OHbjep_WjQ")},
	{"vue", r("Vue.js Full Course - freeCodeCamp", "https://www.youtube.com/watch?v=FXpIoQ_rT_c")},
	{"next.js", r("Next.js Full Course - freeCodeCamp", "https://www.youtube.com/watch?v=9P8mASSREYM")},
	{"nextjs", r("Next.js Full Course - freeCodeCamp", "https://www.youtube.com/watch?v=9P8mASSREYM")},
	{"mongodb", r("MongoDB Full Course - freeCodeCamp", "https://www.youtube.com/watch?v=-56x56UppqQ")},
	{"sql", r("SQL Full Course - freeCodeCamp", "https://www.youtube.com/watch?v=HXV3zeQKqGY")},
	{"mysql", r("MySQL Full Course - freeCodeCamp", "https://www.youtube.com/watch?v=HXV3zeQKqGY")},
	{"postgresql", r("PostgreSQL Full Course - freeCodeCamp", "https://www.youtube.com/watch?v=qw--VYLpxG4")},
	{"machine learning", r("Machine Learning Full Course - freeCodeCamp", "https://www.youtube.com/watch?v=NWONeJKn6kc")},
	{"data science", r("Data Science Full Course - freeCodeCamp", "https://www.youtube.com/watch?v=ua-CiDNNj30")},
	{"pandas", r("Pandas Full Course - freeCodeCamp", "https://www.youtube.com/watch?v=vmEHCJofslg")},
	{"numpy", r("NumPy Full Course - freeCodeCamp", "https://www.youtube.com/watch?v=QUT1VHiLmmI")},
	{"docker", r("Docker Full Course - freeCodeCamp", "https://www.youtube.com/watch?v=fqMOX6JJhGo")},
	{"kubernetes", r("Kubernetes Full Course - freeCodeCamp", "https://www.youtube.com/watch?v=X48VuDVv0do")},
	{"aws", r("AWS Full Course - freeCodeCamp", "https://www.youtube.com/watch?v=3hLmDS179YE")},
	{"git", r("Git & GitHub Full Course - freeCodeCamp", "https://www.youtube.com/watch?v=RGOj5yH7evk")},
	{"linux", r("Linux Full Course - freeCodeCamp", "https://www.youtube.com/watch?v=wBp0Rb-ZJak")},
	{"flutter", r("Flutter Full Course - freeCodeCamp", "https://www.youtube.com/watch?v=VPvVD8t02U8")},
	{"react native", r("React Native Full Course - freeCodeCamp", "https://www.youtube.com/watch?v=obH0Po_RdWk")},
}

// DefaultPlaylist is the general web development course.
var DefaultPlaylist = r("Web Development Full Course - freeCodeCamp", "https://www.youtube.com/watch?v=pQN-pnXPaVg")

// PlaylistForSkill returns a curated full-course video for s: an exact match
// on the normalized skill, then the first entry that overlaps it, then a
// YouTube search for the skill.
func PlaylistForSkill(s string) model.Resource {
	n := skill.Normalize(s)
	if n == "" {
		return DefaultPlaylist
	}
	for _, p := range playlists {
		if p.skill == n {
			return p.playlist
		}
	}
	for _, p := range playlists {
		if skill.Overlaps(p.skill, n) {
			return p.playlist
		}
	}
	return model.Resource{
		Name: "Learn " + s + " - YouTube Search",
		URL:  "https://www.youtube.com/results?search_query=" + linkcheck.EncodeComponent(s) + "+full+course+tutorial",
	}
}
