// Package captcha renders distorted text images.
//
// A [Generator] turns a string into an RGBA raster that is easy for a person
// to read and awkward for a machine. Each render runs the same pipeline:
//
//  1. Background: a small grid of random colors is upscaled, rotated by a
//     random angle and center-cropped, giving an irregular texture.
//  2. Glyphs: each character is rasterized with a randomly chosen font and
//     size, rotated by up to ±30° and pinched by a random quadrilateral warp.
//  3. Layout: glyphs are placed left to right with random negative kerning
//     and vertical jitter.
//  4. Composition: optional shadow copies are stamped at jittered offsets,
//     then the foreground glyphs on top. The row is rendered at its natural
//     width and rescaled to the requested size.
//  5. Noise: random dots and elliptical arcs are drawn over the result, and
//     a smoothing filter is applied with a configurable probability.
//
// # Usage
//
//	gen, err := captcha.New(captcha.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	img, err := gen.Generate("Ab3")
//
// Encoding is handled by the sink package:
//
//	err = gen.Write("Ab3", w, sink.FormatPNG)
//
// # Randomness
//
// All randomness comes from math/rand/v2. [Generator.Generate] derives a
// fresh source per call from the generator's master source, which is seeded
// from [Config.Seed] (or randomly when it is zero). [Generator.Render] takes
// the source explicitly, so identical text and an identically seeded source
// produce identical pixels.
//
// # Concurrency
//
// A Generator is safe for concurrent use. Fonts are parsed once, on the first
// render or on [Generator.LoadFonts], and are shared read-only afterwards.
// Every render owns its canvas, glyph masks and font faces.
package captcha
