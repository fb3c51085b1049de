package main

import (
	"fmt"
	"io"

	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/vpcomp/format"
	"github.com/gogpu/vpcomp/layer"
	"github.com/gogpu/vpcomp/sfc"
	"github.com/gogpu/vpcomp/surface"
)

// file is the YAML form of a composition request.
type file struct {
	Output    surfaceSpec   `yaml:"output"`
	Inputs    []surfaceSpec `yaml:"inputs"`
	ColorFill *struct {
		Color      uint32 `yaml:"color"`
		ColorSpace string `yaml:"colorspace"`
	} `yaml:"colorfill"`
	Alpha *struct {
		Mode  string  `yaml:"mode"`
		Alpha float64 `yaml:"alpha"`
	} `yaml:"alpha"`
	SFC *struct {
		Pipe       string `yaml:"pipe"`
		Codec      string `yaml:"codec"`
		Deblocking bool   `yaml:"deblocking"`
	} `yaml:"sfc"`
}

type surfaceSpec struct {
	Format     string `yaml:"format"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	ColorSpace string `yaml:"colorspace"`
	Src        []int  `yaml:"src"`
	Dst        []int  `yaml:"dst"`
	Rotation   string `yaml:"rotation"`
	Scaling    string `yaml:"scaling"`
	Blend      *struct {
		Mode  string  `yaml:"mode"`
		Alpha float64 `yaml:"alpha"`
	} `yaml:"blend"`
}

// job is a decoded request with the surfaces it names.
type job struct {
	req *layer.Request
	set *surface.Set
	sfc *sfc.Request
}

// enumLookup matches name case-insensitively against the String values
// of T(0) to T(n-1).
func enumLookup[T ~uint8](kind, name string, n int) (T, error) {
	fold := cases.Fold()
	want := fold.String(name)
	for i := range n {
		v := T(i)
		if fold.String(fmt.Sprint(v)) == want {
			return v, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("unknown %s %q", kind, name)
}

func parseFormat(name string) (format.Format, error) {
	n := 1
	for format.Format(n).Valid() {
		n++
	}
	f, err := enumLookup[format.Format]("format", name, n)
	if err != nil || f == format.Invalid {
		return format.Invalid, fmt.Errorf("unknown format %q", name)
	}
	return f, nil
}

func parseColorSpace(name string) (format.ColorSpace, error) {
	if name == "" {
		return format.ColorSpaceNone, nil
	}
	cs, err := enumLookup[format.ColorSpace]("color space", name, 32)
	if err != nil || !cs.Valid() {
		return format.ColorSpaceNone, fmt.Errorf("unknown color space %q", name)
	}
	return cs, nil
}

func parseRect(v []int) (layer.Rect, error) {
	switch len(v) {
	case 0:
		return layer.Rect{}, nil
	case 4:
		return layer.R(v[0], v[1], v[2], v[3]), nil
	default:
		return layer.Rect{}, fmt.Errorf("rectangle needs 4 values, got %d", len(v))
	}
}

func (s *surfaceSpec) spec(tag surface.Tag) (layer.Spec, *surface.Surface, error) {
	f, err := parseFormat(s.Format)
	if err != nil {
		return layer.Spec{}, nil, err
	}
	if s.Width <= 0 || s.Height <= 0 {
		return layer.Spec{}, nil, fmt.Errorf("%s: size %dx%d", tag, s.Width, s.Height)
	}
	out := layer.Spec{Surface: tag}
	if out.ColorSpace, err = parseColorSpace(s.ColorSpace); err != nil {
		return layer.Spec{}, nil, err
	}
	if out.Src, err = parseRect(s.Src); err != nil {
		return layer.Spec{}, nil, fmt.Errorf("%s src: %w", tag, err)
	}
	if out.Dst, err = parseRect(s.Dst); err != nil {
		return layer.Spec{}, nil, fmt.Errorf("%s dst: %w", tag, err)
	}
	if s.Rotation != "" {
		if out.Rotation, err = enumLookup[layer.Rotation]("rotation", s.Rotation, len(layer.Rotations())); err != nil {
			return layer.Spec{}, nil, err
		}
	}
	if s.Scaling != "" {
		if out.Scaling, err = enumLookup[layer.ScalingMode]("scaling", s.Scaling, 4); err != nil {
			return layer.Spec{}, nil, err
		}
	}
	if s.Blend != nil {
		mode, err := enumLookup[layer.BlendMode]("blend mode", s.Blend.Mode, 7)
		if err != nil {
			return layer.Spec{}, nil, err
		}
		out.Blend = &layer.Blend{Mode: mode, Alpha: s.Blend.Alpha}
	}
	return out, surface.New(f, s.Width, s.Height), nil
}

// decode reads one YAML request.
func decode(r io.Reader) (*job, error) {
	var doc file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode request: %w", err)
	}

	j := &job{req: &layer.Request{}, set: surface.NewSet()}
	for i := range doc.Inputs {
		tag := surface.Input(i)
		spec, surf, err := doc.Inputs[i].spec(tag)
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", i, err)
		}
		j.req.Inputs = append(j.req.Inputs, spec)
		j.set.Register(tag, surf)
	}

	out, surf, err := doc.Output.spec(surface.Output(0))
	if err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}
	j.req.Output = out
	j.set.Register(surface.Output(0), surf)

	if cf := doc.ColorFill; cf != nil {
		cs, err := parseColorSpace(cf.ColorSpace)
		if err != nil {
			return nil, err
		}
		if cs == format.ColorSpaceNone {
			cs = format.SRGB
		}
		j.req.ColorFill = &layer.ColorFill{Enabled: true, Color: cf.Color, ColorSpace: cs}
	}
	if a := doc.Alpha; a != nil {
		mode, err := enumLookup[layer.AlphaMode]("alpha mode", a.Mode, 4)
		if err != nil {
			return nil, err
		}
		j.req.Alpha = &layer.AlphaOutput{Enabled: true, Mode: mode, Alpha: a.Alpha}
	}

	if s := doc.SFC; s != nil {
		if len(doc.Inputs) == 0 {
			return nil, fmt.Errorf("sfc: no input surface")
		}
		in, _ := j.set.Lookup(surface.Input(0))
		r := &sfc.Request{Input: in, Output: surf, Deblocking: s.Deblocking}
		if s.Pipe != "" {
			if r.Pipe, err = enumLookup[sfc.Pipe]("pipe", s.Pipe, 2); err != nil {
				return nil, err
			}
		}
		if s.Codec != "" {
			if r.Codec, err = enumLookup[sfc.Codec]("codec", s.Codec, 6); err != nil {
				return nil, err
			}
		}
		j.sfc = r
	}
	return j, nil
}
