// Package objpath parses and normalizes raw storage paths and URLs into
// canonical object addresses.
//
// Two representations exist side by side: the backend-native ObjectPath
// (bucket + object key) and the canonical entity path exposed to the rest
// of the application ("/objects/<id>"). The codec converts between raw
// client-supplied strings and both forms.
//
// # Parsing
//
//	codec := objpath.New(objpath.Config{DefaultBucket: "tours-media"})
//	p, err := codec.Parse("https://storage.googleapis.com/tours-media/covers/1.jpg")
//	// p.Bucket == "tours-media", p.Key == "covers/1.jpg"
//
// # Normalization
//
// Normalize maps any raw path or bucket URL to its canonical entity path
// when it addresses a private object, and returns the input path otherwise:
//
//	codec := objpath.New(objpath.Config{PrivateDir: "/tours-media/.private"})
//	codec.Normalize("/tours-media/.private/uploads/abc") // "/objects/uploads/abc"
//	codec.Normalize("/img/logo.png")                     // "/img/logo.png"
//
// Normalize is idempotent: feeding its output back in yields the same
// string.
package objpath
