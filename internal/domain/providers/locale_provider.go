package providers

// LocaleTextProvider supplies translated strings per locale.
type LocaleTextProvider interface {
	// Lookup returns the text for a dotted key (e.g. "conf.current_location").
	Lookup(key, locale string) (string, error)
}
