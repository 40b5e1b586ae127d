// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"fmt"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

// fontCache keeps one face per requested size.
type fontCache struct {
	src   *text.FontSource
	faces map[float64]text.Face
}

func newFontCache(src *text.FontSource) *fontCache {
	return &fontCache{src: src, faces: make(map[float64]text.Face)}
}

func defaultFontCache() (*fontCache, error) {
	src, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("software: load default font: %w", err)
	}
	return newFontCache(src), nil
}

func (c *fontCache) face(size float64) text.Face {
	if f, ok := c.faces[size]; ok {
		return f
	}
	f := c.src.Face(size)
	c.faces[size] = f
	return f
}
