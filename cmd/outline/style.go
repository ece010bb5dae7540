package main

import (
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/outline"
)

// decodeStyle reads a stroke style from TOML. Missing keys keep their
// defaults; unknown keys are an error.
//
//	width = 4
//	cap = "round"
//	join = "bevel"
//	miter-limit = 10
func decodeStyle(r io.Reader) (outline.Stroke, error) {
	s := outline.DefaultStroke()
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&s); err != nil {
		return outline.Stroke{}, fmt.Errorf("stroke style: %w", err)
	}
	if err := s.Validate(); err != nil {
		return outline.Stroke{}, err
	}
	return s, nil
}

func flagStyle(width float64, lineCap, join string, miterLimit float64) (outline.Stroke, error) {
	s := outline.DefaultStroke().
		WithWidth(float32(width)).
		WithMiterLimit(float32(miterLimit))
	if err := s.Cap.UnmarshalText([]byte(lineCap)); err != nil {
		return outline.Stroke{}, err
	}
	if err := s.Join.UnmarshalText([]byte(join)); err != nil {
		return outline.Stroke{}, err
	}
	if err := s.Validate(); err != nil {
		return outline.Stroke{}, err
	}
	return s, nil
}
