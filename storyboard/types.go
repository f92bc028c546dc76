package storyboard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"osbc/osufile"
)

// Layer is the render layer a storyboard object is placed on.
type Layer int

const (
	LayerBackground Layer = iota
	LayerFail
	LayerPass
	LayerForeground
)

var layerNames = map[Layer]string{
	LayerBackground: "Background",
	LayerFail:       "Fail",
	LayerPass:       "Pass",
	LayerForeground: "Foreground",
}

// ParseLayer accepts both the legacy numeric code and the named identifier;
// real beatmap corpora mix the two spellings regardless of declared version.
func ParseLayer(s string) (Layer, error) {
	for layer, name := range layerNames {
		if s == name || s == strconv.Itoa(int(layer)) {
			return layer, nil
		}
	}
	return 0, fmt.Errorf("unknown layer %q", s)
}

// Render spells the layer the way the target version does: numeric codes for
// legacy versions, named identifiers afterwards.
func (l Layer) Render(version osufile.Version) string {
	if osufile.PolicyFor(version).LegacyEnumSpelling {
		return strconv.Itoa(int(l))
	}
	return l.String()
}

func (l Layer) String() string {
	if name, ok := layerNames[l]; ok {
		return name
	}
	return strconv.Itoa(int(l))
}

// Origin is the anchor point of a storyboard object.
type Origin int

const (
	OriginTopLeft Origin = iota
	OriginCentre
	OriginCentreLeft
	OriginTopRight
	OriginBottomCentre
	OriginTopCentre
	OriginCustom
	OriginCentreRight
	OriginBottomLeft
	OriginBottomRight
)

var originNames = map[Origin]string{
	OriginTopLeft:      "TopLeft",
	OriginCentre:       "Centre",
	OriginCentreLeft:   "CentreLeft",
	OriginTopRight:     "TopRight",
	OriginBottomCentre: "BottomCentre",
	OriginTopCentre:    "TopCentre",
	OriginCustom:       "Custom",
	OriginCentreRight:  "CentreRight",
	OriginBottomLeft:   "BottomLeft",
	OriginBottomRight:  "BottomRight",
}

// ParseOrigin accepts legacy numeric and named spellings.
func ParseOrigin(s string) (Origin, error) {
	for origin, name := range originNames {
		if s == name || s == strconv.Itoa(int(origin)) {
			return origin, nil
		}
	}
	return 0, fmt.Errorf("unknown origin %q", s)
}

// Render spells the origin per the target version's encoding table.
func (o Origin) Render(version osufile.Version) string {
	if osufile.PolicyFor(version).LegacyEnumSpelling {
		return strconv.Itoa(int(o))
	}
	return o.String()
}

func (o Origin) String() string {
	if name, ok := originNames[o]; ok {
		return name
	}
	return strconv.Itoa(int(o))
}

// LoopType selects animation frame cycling behavior.
type LoopType int

const (
	LoopForever LoopType = iota
	LoopOnce
)

func ParseLoopType(s string) (LoopType, error) {
	switch s {
	case "LoopForever", "0":
		return LoopForever, nil
	case "LoopOnce", "1":
		return LoopOnce, nil
	default:
		return 0, fmt.Errorf("unknown loop type %q", s)
	}
}

func (l LoopType) String() string {
	if l == LoopOnce {
		return "LoopOnce"
	}
	return "LoopForever"
}

// Easing is the interpolation curve number of a command keyframe.
type Easing int

const maxEasing = 34

func ParseEasing(s string) (Easing, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if v < 0 || v > maxEasing {
		return 0, &UnknownEasingError{Value: v}
	}
	return Easing(v), nil
}

func (e Easing) String() string { return strconv.Itoa(int(e)) }

// ObjectType is the closed Sprite/Animation variant of an object header.
type ObjectType interface {
	// FilePath is the image path exactly as it appeared in the source,
	// quotes included.
	FilePath() string

	objectType()
}

// Sprite is a still image placed on the timeline.
type Sprite struct {
	Path string
}

func (s *Sprite) FilePath() string { return s.Path }
func (s *Sprite) objectType()      {}

// Animation is a frame sequence; Path names frame 0's file with the frame
// number inserted before the extension by the game.
type Animation struct {
	Path       string
	FrameCount int
	FrameDelay decimal.Decimal
	LoopType   LoopType
}

func (a *Animation) FilePath() string { return a.Path }
func (a *Animation) objectType()      {}

// Object is one storyboard element: a sprite or animation owning an ordered
// forest of animation commands.
type Object struct {
	Layer    Layer
	Origin   Origin
	Position osufile.Position
	Type     ObjectType
	Commands []Command
}

// AppendCommand attaches a command to the object's top-level command list.
// This is the narrow mutation surface used when building storyboards
// programmatically instead of parsing them.
func (o *Object) AppendCommand(cmd Command) {
	o.Commands = append(o.Commands, cmd)
}

const (
	spriteHeader    = "Sprite"
	animationHeader = "Animation"
)

// ParseObject decodes a Sprite or Animation header line. A header token that
// matches neither known object type fails with *UnknownObjectTypeError so the
// caller can fall back to normal-event parsing.
func ParseObject(s string, version osufile.Version) (*Object, error) {
	fields := strings.Split(s, ",")
	header := fields[0]
	if header != spriteHeader && header != animationHeader {
		return nil, &UnknownObjectTypeError{Token: header}
	}

	// layer, origin, filepath, x, y are common to both headers
	names := []string{"layer", "origin", "filepath", "x", "y"}
	if len(fields) < len(names)+1 {
		return nil, &MissingObjectFieldError{Field: names[len(fields)-1]}
	}

	obj := &Object{}
	var err error
	if obj.Layer, err = ParseLayer(fields[1]); err != nil {
		return nil, &ObjectFieldError{Field: "layer", Value: fields[1], Err: err}
	}
	if obj.Origin, err = ParseOrigin(fields[2]); err != nil {
		return nil, &ObjectFieldError{Field: "origin", Value: fields[2], Err: err}
	}
	path := fields[3]

	if obj.Position.X, err = osufile.ParseDecimal(fields[4]); err != nil {
		return nil, &ObjectFieldError{Field: "x", Value: fields[4], Err: err}
	}

	switch header {
	case spriteHeader:
		// trailing fields are not a separate grammar element, they make
		// the y value invalid
		y := strings.Join(fields[5:], ",")
		if obj.Position.Y, err = osufile.ParseDecimal(y); err != nil {
			return nil, &ObjectFieldError{Field: "y", Value: y, Err: err}
		}
		obj.Type = &Sprite{Path: path}
	case animationHeader:
		if obj.Position.Y, err = osufile.ParseDecimal(fields[5]); err != nil {
			return nil, &ObjectFieldError{Field: "y", Value: fields[5], Err: err}
		}
		anim := &Animation{LoopType: LoopForever, Path: path}
		if len(fields) < 7 {
			return nil, &MissingObjectFieldError{Field: "frame_count"}
		}
		if anim.FrameCount, err = strconv.Atoi(fields[6]); err != nil {
			return nil, &ObjectFieldError{Field: "frame_count", Value: fields[6], Err: err}
		}
		if len(fields) < 8 {
			return nil, &MissingObjectFieldError{Field: "frame_delay"}
		}
		if anim.FrameDelay, err = osufile.ParseDecimal(fields[7]); err != nil {
			return nil, &ObjectFieldError{Field: "frame_delay", Value: fields[7], Err: err}
		}
		// loop type is commonly omitted in the wild and defaults to
		// LoopForever
		if len(fields) > 8 {
			lt := strings.Join(fields[8:], ",")
			if anim.LoopType, err = ParseLoopType(lt); err != nil {
				return nil, &ObjectFieldError{Field: "loop_type", Value: lt, Err: err}
			}
		}
		obj.Type = anim
	}
	return obj, nil
}

// Render writes the object header line for the target version. Commands are
// rendered separately by RenderCommands.
func (o *Object) Render(version osufile.Version) string {
	common := fmt.Sprintf("%s,%s,%s,%s",
		o.Layer.Render(version), o.Origin.Render(version), o.Type.FilePath(), o.Position)
	if anim, ok := o.Type.(*Animation); ok {
		return fmt.Sprintf("%s,%s,%d,%s,%s",
			animationHeader, common, anim.FrameCount, osufile.FormatDecimal(anim.FrameDelay), anim.LoopType)
	}
	return spriteHeader + "," + common
}
