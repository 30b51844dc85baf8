// Package wav decodes and writes WAV (RIFF) PCM audio.
//
// The Decoder implements audio.Decoder over github.com/go-audio/wav and
// produces an audio.Source of interleaved float32 samples normalized by
// the file's bit depth. Only uncompressed PCM is supported; compressed
// WAV variants return ErrNotPCM.
//
// WritePCM16 is the counterpart used for mix export: it writes interleaved
// int16 samples as a canonical 44-byte-header WAV file, converting in
// fixed-size chunks so long recordings don't balloon memory.
//
//	var buf bytes.Buffer
//	err := wav.WritePCM16(&buf, 44100, 2, samples)
//
// Decoding a file that is not WAV at all returns ErrNotWavFile.
package wav
