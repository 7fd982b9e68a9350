package tml

type loadOpts struct {
	strictTriple bool
}

// Option adjusts how Load treats the input.
type Option func(*loadOpts)

// StrictTripleQuote makes an unterminated triple-quoted string a load
// error at the opening delimiter. By default the value extends to the
// end of the input.
func StrictTripleQuote() Option {
	return func(o *loadOpts) { o.strictTriple = true }
}
