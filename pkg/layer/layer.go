// Package layer maps pad types to the PCB layers they occupy.
package layer

import (
	"strings"
)

// Layer is a KiCad layer number.
type Layer int

const (
	Bottom Layer = iota // copper, solder side
	L15
	L14
	L13
	L12
	L11
	L10
	L9
	L8
	L7
	L6
	L5
	L4
	L3
	L2
	Top // copper, component side
	GlueBottom
	GlueTop
	PasteBottom
	PasteTop
	SilkBottom
	SilkTop
	MaskBottom
	MaskTop
	Draw
	Comment
	Eco1
	Eco2
	Edge
)

var names = map[Layer]string{
	Bottom:      "B.Cu",
	Top:         "F.Cu",
	GlueBottom:  "B.Adhes",
	GlueTop:     "F.Adhes",
	PasteBottom: "B.Paste",
	PasteTop:    "F.Paste",
	SilkBottom:  "B.SilkS",
	SilkTop:     "F.SilkS",
	MaskBottom:  "B.Mask",
	MaskTop:     "F.Mask",
	Draw:        "Dwgs.User",
	Comment:     "Cmts.User",
	Eco1:        "Eco1.User",
	Eco2:        "Eco2.User",
	Edge:        "Edge.Cuts",
}

// Name returns the KiCad layer name, e.g. "F.Cu".
func (l Layer) Name() string {
	if n, ok := names[l]; ok {
		return n
	}
	if l > Bottom && l < Top {
		return "In" + itoa(int(Top-l)) + ".Cu"
	}
	return "?"
}

func itoa(i int) string {
	if i < 10 {
		return string(rune('0' + i))
	}
	return string(rune('0'+i/10)) + string(rune('0'+i%10))
}

// Set is a bit set of layers.
type Set uint32

const (
	Copper Set = 1 << Top
	Paste  Set = 1 << PasteTop
	Mask   Set = 1 << MaskTop

	CopperBottom  Set = 1 << Bottom
	MaskBottomSet Set = 1 << MaskBottom
)

// Of returns the set holding the given layers.
func Of(layers ...Layer) Set {
	var s Set
	for _, l := range layers {
		s |= 1 << l
	}
	return s
}

// Has reports whether every layer of o is in s.
func (s Set) Has(o Set) bool { return s&o == o }

// Any reports whether s and o share a layer.
func (s Set) Any(o Set) bool { return s&o != 0 }

// Layers lists the members of s in ascending layer order.
func (s Set) Layers() []Layer {
	var res []Layer
	for l := Bottom; l <= Edge; l++ {
		if s&(1<<l) != 0 {
			res = append(res, l)
		}
	}
	return res
}

// Names lists the KiCad names of the members of s, front layers first.
func (s Set) Names() []string {
	var res []string
	for l := Edge; l >= Bottom; l-- {
		if s&(1<<l) != 0 {
			res = append(res, l.Name())
		}
	}
	return res
}

func (s Set) String() string {
	return strings.Join(s.Names(), " ")
}

// PadType selects the layers a pad is made of.
type PadType int

const (
	Normal PadType = iota // copper, paste and solder mask opening
	Bare                  // copper and mask opening, no paste
	PasteOnly             // only solder paste
	MaskOnly              // only a solder mask opening
)

func (t PadType) String() string {
	switch t {
	case Normal:
		return "normal"
	case Bare:
		return "bare"
	case PasteOnly:
		return "paste"
	case MaskOnly:
		return "mask"
	}
	return "?"
}

// ParsePadType is the inverse of PadType.String. The empty string selects
// Normal.
func ParsePadType(s string) (PadType, bool) {
	switch s {
	case "", "normal":
		return Normal, true
	case "bare":
		return Bare, true
	case "paste":
		return PasteOnly, true
	case "mask":
		return MaskOnly, true
	}
	return Normal, false
}

// IsSpecial reports whether pads of this type carry no copper.
func (t PadType) IsSpecial() bool {
	return t == PasteOnly || t == MaskOnly
}

// TypeToLayers returns the layers a pad of type t occupies.
func TypeToLayers(t PadType) Set {
	switch t {
	case Normal:
		return Copper | Paste | Mask
	case Bare:
		return Copper | Mask
	case PasteOnly:
		return Paste
	case MaskOnly:
		return Mask
	}
	return 0
}

// LayersToType classifies a layer set. Copper with paste is a normal pad and
// copper without paste a bare one, whatever happens to the mask. Without
// copper, paste wins over mask.
func LayersToType(s Set) PadType {
	if s.Any(Copper) {
		if s.Any(Paste) {
			return Normal
		}
		return Bare
	}
	if s.Any(Paste) {
		return PasteOnly
	}
	return MaskOnly
}

// ThroughHole turns the layers of a surface pad into those of a plated
// through-hole pad: copper and mask on both sides, no paste.
func ThroughHole(s Set) Set {
	s &^= Paste
	if s.Any(Copper) {
		s |= CopperBottom
	}
	if s.Any(Mask) {
		s |= MaskBottomSet
	}
	return s
}
