package protocol

// Hemisphere selects the left or right variant of a per-hemisphere
// protocol.
type Hemisphere string

// Hemisphere abbreviations follow the FreeSurfer convention.
const (
	LeftHemisphere  Hemisphere = "lh"
	RightHemisphere Hemisphere = "rh"
)

// Label offsets applied to the base DKT region numbers per hemisphere,
// matching the FreeSurfer cortical label numbering (1000-series left,
// 2000-series right).
const (
	leftLabelOffset  = 1000
	rightLabelOffset = 2000
)

// dktSulcusNames are the 25 sulci of the Desikan-Killiany-Tourville
// labeling protocol, in protocol order.
var dktSulcusNames = []string{
	"frontomarginal sulcus",
	"superior frontal sulcus",
	"inferior frontal sulcus",
	"precentral sulcus",
	"central sulcus",
	"postcentral sulcus",
	"intraparietal sulcus",
	"primary intermediate sulcus/1st segment of post. sup. temporal sulcus",
	"sylvian fissure",
	"lateral occipital sulcus",
	"anterior occipital sulcus",
	"superior temporal sulcus",
	"inferior temporal sulcus",
	"circular sulcus",
	"1st transverse temporal sulcus and Heschl's sulcus",
	"cingulate sulcus",
	"paracentral sulcus",
	"parietooccipital fissure",
	"calcarine fissure",
	"superior rostral sulcus",
	"callosal sulcus",
	"lateral H-shaped orbital sulcus",
	"olfactory sulcus",
	"occipitotemporal sulcus",
	"collateral sulcus",
}

// dktPairLists are the label pairs bounding each DKT sulcus, using the
// base region numbers (the hemisphere offset is added at construction).
var dktPairLists = [][][2]int{
	{{12, 28}},
	{{3, 28}, {27, 28}},
	{{3, 18}, {3, 19}, {3, 20}, {18, 27}, {19, 27}, {20, 27}},
	{{24, 28}, {3, 24}, {24, 27}, {18, 24}, {19, 24}, {20, 24}},
	{{22, 24}},
	{{22, 29}, {22, 31}},
	{{29, 31}, {8, 29}},
	{{8, 31}},
	{{30, 31}},
	{{8, 11}, {11, 29}},
	{{11, 15}, {9, 11}},
	{{15, 30}},
	{{9, 15}},
	{{12, 35}, {30, 35}, {34, 35}, {2, 35}, {10, 35}, {23, 35}, {26, 35},
		{22, 35}, {24, 35}, {31, 35}},
	{{30, 34}},
	{{2, 14}, {10, 14}, {14, 23}, {14, 26}, {2, 28}, {10, 28}, {23, 28},
		{26, 28}, {2, 17}, {10, 17}, {17, 23}, {17, 26}, {17, 25}},
	{{17, 28}},
	{{5, 25}},
	{{13, 25}, {2, 13}, {10, 13}, {13, 23}, {13, 26}},
	{{14, 28}},
	{{2, 4}, {4, 10}, {4, 23}, {4, 26}},
	{{3, 12}, {12, 27}, {12, 18}, {12, 19}, {12, 20}},
	{{12, 14}},
	{{7, 9}, {7, 11}},
	{{6, 7}, {7, 16}, {7, 13}},
}

// DKT returns the Desikan-Killiany-Tourville sulcus protocol for the
// given hemisphere. The returned Protocol is freshly constructed and
// immutable; sulcus IDs index dktSulcusNames.
func DKT(hemi Hemisphere) *Protocol {
	offset := leftLabelOffset
	if hemi == RightHemisphere {
		offset = rightLabelOffset
	}

	defs := make([]Definition, len(dktPairLists))
	for i, pairs := range dktPairLists {
		d := Definition{Name: dktSulcusNames[i]}
		for _, pr := range pairs {
			d.Pairs = append(d.Pairs, NewPair(pr[0]+offset, pr[1]+offset))
		}
		defs[i] = d
	}
	return New(defs)
}
