package render

// OtherLabel is the bucket label for categories beyond the cap.
const OtherLabel = "Other"

// OtherColor is the fixed neutral color for the Other bucket and for
// categories missing from a caller-supplied color map.
const OtherColor = "#808080"

// Palette is the default qualitative palette for discrete categories,
// assigned in sort order and cycled when categories exceed it.
var Palette = []string{
	"#AA0DFE", "#3283FE", "#85660D", "#782AB6", "#565656",
	"#1C8356", "#16FF32", "#F7E1A0", "#E2E2E2", "#1CBE4F",
	"#C4451C", "#DEA0FD", "#FE00FA", "#325A9B", "#FEAF16",
	"#F8A19F", "#90AD1C", "#F6222E", "#1CFFCE", "#2ED9FF",
	"#B10DA1", "#C075A6", "#FC1CBF", "#B00068", "#FBE426",
	"#FA0087",
}
