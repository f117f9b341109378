// Package htj2k turns the line output of an HTJ2K (ISO/IEC 15444-15)
// decoding engine into a single interleaved 8-bit or 16-bit pixel buffer.
//
// The wavelet and entropy stages live behind the Engine interface. This
// package validates that every component shares one geometry and sample
// format, pulls lines row by row, saturates them to the output precision,
// and reports failures as OK/Unsupported/Error statuses with a message.
//
// Basic usage:
//
//	htj2k.RegisterEngine("openjph", opener)
//
//	var img htj2k.DecodedImage
//	msg := make([]byte, 256)
//	if st := htj2k.Decode(data, &img, msg); st != htj2k.StatusOK {
//		log.Printf("%s: %s", st, htj2k.MessageString(msg))
//	}
//	defer img.Release()
//
// Registering an engine also registers a go-dicom codec for the HTJ2K
// transfer syntaxes. Nothing is registered until then.
package htj2k
