// Package wkt reads and writes rectilinear multi-polygons in
// Well-Known Text with integer coordinates.
//
// Supported geometry types are POLYGON and MULTIPOLYGON. Rings follow
// the WKT convention of repeating the first vertex at the end; the
// parser drops the closing vertex and the writer restores it.
// Coordinates must be integers: the covering engine performs all
// geometry exactly on the integer grid.
package wkt

import (
	"fmt"
	"strings"

	"github.com/polycover/polycover/pkg/errors"
	"github.com/polycover/polycover/pkg/geom"
)

// Parse reads a POLYGON or MULTIPOLYGON text into a multi-polygon.
func Parse(text string) (geom.MultiPolygon, error) {
	p := &parser{input: text}
	p.skipSpace()
	keyword := p.keyword()
	switch keyword {
	case "MULTIPOLYGON":
		return p.multiPolygon()
	case "POLYGON":
		polygon, err := p.polygon()
		if err != nil {
			return nil, err
		}
		return geom.MultiPolygon{*polygon}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unsupported WKT geometry type %q", keyword)
}

// Format renders a multi-polygon as MULTIPOLYGON text.
func Format(mp geom.MultiPolygon) string {
	if len(mp) == 0 {
		return "MULTIPOLYGON EMPTY"
	}
	var b strings.Builder
	b.WriteString("MULTIPOLYGON (")
	for i := range mp {
		if i > 0 {
			b.WriteString(", ")
		}
		formatPolygon(&b, &mp[i])
	}
	b.WriteString(")")
	return b.String()
}

// FormatRects renders a cover as a MULTIPOLYGON of rectangles.
func FormatRects(rects []geom.Rect) string {
	mp := make(geom.MultiPolygon, 0, len(rects))
	for _, r := range rects {
		mp = append(mp, geom.Polygon{Outer: r.Ring()})
	}
	return Format(mp)
}

func formatPolygon(b *strings.Builder, p *geom.Polygon) {
	b.WriteString("(")
	formatRing(b, p.Outer)
	for _, hole := range p.Holes {
		b.WriteString(", ")
		formatRing(b, hole)
	}
	b.WriteString(")")
}

func formatRing(b *strings.Builder, ring geom.Ring) {
	b.WriteString("(")
	for i, p := range ring {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(b, "%d %d", p.X, p.Y)
	}
	fmt.Fprintf(b, ", %d %d", ring[0].X, ring[0].Y)
	b.WriteString(")")
}

type parser struct {
	input string
	pos   int
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) keyword() string {
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') {
			break
		}
		p.pos++
	}
	return strings.ToUpper(p.input[start:p.pos])
}

func (p *parser) expect(c byte) error {
	p.skipSpace()
	if p.pos >= len(p.input) || p.input[p.pos] != c {
		return errors.New(errors.ErrCodeInvalidInput, "expected %q at offset %d", string(c), p.pos)
	}
	p.pos++
	return nil
}

func (p *parser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) number() (geom.Coord, error) {
	p.skipSpace()
	start := p.pos
	if p.pos < len(p.input) && (p.input[p.pos] == '-' || p.input[p.pos] == '+') {
		p.pos++
	}
	digits := 0
	for p.pos < len(p.input) && p.input[p.pos] >= '0' && p.input[p.pos] <= '9' {
		p.pos++
		digits++
	}
	if digits == 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "expected integer at offset %d", start)
	}
	if p.pos < len(p.input) && p.input[p.pos] == '.' {
		return 0, errors.New(errors.ErrCodeInvalidInput,
			"non-integer coordinate at offset %d: the engine requires integer coordinates", start)
	}
	var v geom.Coord
	if _, err := fmt.Sscanf(p.input[start:p.pos], "%d", &v); err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse coordinate at offset %d", start)
	}
	return v, nil
}

func (p *parser) multiPolygon() (geom.MultiPolygon, error) {
	p.skipSpace()
	if strings.HasPrefix(strings.ToUpper(p.input[p.pos:]), "EMPTY") {
		return geom.MultiPolygon{}, nil
	}
	if err := p.expect('('); err != nil {
		return nil, err
	}
	var mp geom.MultiPolygon
	for {
		polygon, err := p.polygon()
		if err != nil {
			return nil, err
		}
		mp = append(mp, *polygon)
		if p.peek() != ',' {
			break
		}
		p.pos++
	}
	if err := p.expect(')'); err != nil {
		return nil, err
	}
	return mp, nil
}

func (p *parser) polygon() (*geom.Polygon, error) {
	if err := p.expect('('); err != nil {
		return nil, err
	}
	var rings []geom.Ring
	for {
		ring, err := p.ring()
		if err != nil {
			return nil, err
		}
		rings = append(rings, ring)
		if p.peek() != ',' {
			break
		}
		p.pos++
	}
	if err := p.expect(')'); err != nil {
		return nil, err
	}
	return geom.NewPolygon(rings[0], rings[1:]...)
}

func (p *parser) ring() (geom.Ring, error) {
	if err := p.expect('('); err != nil {
		return nil, err
	}
	var ring geom.Ring
	for {
		x, err := p.number()
		if err != nil {
			return nil, err
		}
		y, err := p.number()
		if err != nil {
			return nil, err
		}
		ring = append(ring, geom.Point{X: x, Y: y})
		if p.peek() != ',' {
			break
		}
		p.pos++
	}
	if err := p.expect(')'); err != nil {
		return nil, err
	}
	if len(ring) > 1 && ring[0] == ring[len(ring)-1] {
		ring = ring[:len(ring)-1]
	}
	return ring, nil
}
