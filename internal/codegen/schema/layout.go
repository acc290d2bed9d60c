package schema

// alignUp rounds n up to the next multiple of align.
func alignUp(n, align int) int {
	if align <= 1 {
		return n
	}
	if r := n % align; r != 0 {
		return n + align - r
	}
	return n
}

// layout assigns offsets and padding to every field of s and fills in its
// size and alignment. Field order is never changed.
func layout(s *Struct) {
	offset := 0
	align := 1
	for _, f := range s.Fields {
		a := f.Type.Align()
		if a > align {
			align = a
		}
		aligned := alignUp(offset, a)
		f.Pad = aligned - offset
		f.Offset = aligned
		offset = aligned + f.Type.Size()
	}
	s.Align = align
	s.Size = alignUp(offset, align)
	s.TailPad = s.Size - offset
}
