package table

import "image/color"

// Count is the number of pixels of one color in one image.
type Count struct {
	Name   string
	Color  color.RGBA
	Pixels int
}

// Histogram returns the number of pixels of each color per image. Images
// appear in insertion order and colors in the order they are first seen.
func (t *Table) Histogram() []Count {
	type key struct {
		name  string
		color color.RGBA
	}

	var counts []Count
	index := make(map[key]int)
	for _, r := range t.rows {
		k := key{r.Name, r.Color}
		if i, ok := index[k]; ok {
			counts[i].Pixels++
			continue
		}
		index[k] = len(counts)
		counts = append(counts, Count{
			Name:   r.Name,
			Color:  r.Color,
			Pixels: 1,
		})
	}
	return counts
}
