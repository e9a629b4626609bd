// Package pkg provides the libraries behind the captcha command.
//
// # Overview
//
// captcha renders text into distorted images: each character is drawn,
// rotated and warped on its own, laid out with overlapping kerning, stamped
// onto a noisy background and finally covered with dots and curves.
//
//  1. [captcha] - The generator (configuration, rendering stages, Panda mode)
//  2. [fonts] - Font identifiers, builtin Go fonts and the fonts × sizes table
//  3. [sink] - Encoding rendered images as PNG, JPEG, GIF, BMP or TIFF
//  4. [batch] - Concurrent rendering of many random-text images
//  5. [cache] - File cache for slow system font lookups
//  6. [errors], [observability], [buildinfo] - Shared infrastructure
//
// # Architecture
//
// The data flow of one render:
//
//	Config + text
//	     ↓
//	[fonts] table (resolve + parse once)
//	     ↓
//	[captcha] background → glyphs → layout → compose → noise → smooth
//	     ↓
//	[sink] encoder → file or writer
//
// # Quick Start
//
//	gen, err := captcha.New(captcha.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	if err := gen.WriteFile("Ab3", "ab3.png"); err != nil {
//	    return err
//	}
package pkg
