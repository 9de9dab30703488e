package tracer

// Upscale resamples src to dstW x dstH using nearest neighbour lookups.
func Upscale(src *Framebuffer, dstW, dstH uint32) *Framebuffer {
	dst := NewFramebuffer(dstW, dstH)
	UpscaleInto(dst, src)
	return dst
}

// UpscaleInto resamples src into the already allocated dst. Every
// destination pixel copies the source pixel at floor(dest * src/dst).
func UpscaleInto(dst, src *Framebuffer) {
	if dst.Width == 0 || dst.Height == 0 || src.Width == 0 || src.Height == 0 {
		return
	}

	if dst.Width == src.Width && dst.Height == src.Height {
		copy(dst.Pixels, src.Pixels)
		return
	}

	ratioX := float64(src.Width) / float64(dst.Width)
	ratioY := float64(src.Height) / float64(dst.Height)

	srcCols := make([]uint32, dst.Width)
	for x := range srcCols {
		srcCols[x] = clampIndex(uint32(float64(x)*ratioX), src.Width)
	}

	for y := uint32(0); y < dst.Height; y++ {
		srcRow := src.Row(clampIndex(uint32(float64(y)*ratioY), src.Height))
		dstRow := dst.Row(y)
		for x, srcX := range srcCols {
			dstRow[x] = srcRow[srcX]
		}
	}
}

func clampIndex(idx, dim uint32) uint32 {
	if idx >= dim {
		return dim - 1
	}
	return idx
}
