// Package ocr reads handwritten labels on sketches using Tesseract.
//
// This package wraps the Tesseract OCR engine (via gosseract/v2) as a
// recognizer.Classifier. When the person drawing writes the name of what
// they drew, the written word is stronger evidence than any shape
// heuristic. Reader runs word-level OCR on the sketch and matches the words
// against a label vocabulary.
//
// # Prerequisites
//
// Tesseract must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// # Matching
//
// Words are lower-cased and stripped of non-letters. Two-word phrases are
// tried before single words so "coffee cup" wins over "cup". A trailing
// plural "s" is ignored. Each match adds the word's confidence to its
// label; the scores are then normalised like any other classifier output.
//
// # Error Handling
//
// ErrNoText is returned when the sketch is blank or no word names a label
// in the vocabulary. Callers typically chain Reader in front of a heuristic
// profile with recognizer.Fallback, which treats the error as "try the next
// classifier".
package ocr
