// Package ini parses the bracketed INI dialect: `[section]` headers in
// a flat namespace, `key = value` entries, full-line and inline
// comments with `;` or `#`, and double-quoted values with backslash
// escapes.
//
// Values are stored as raw byte views into the input; typed reads
// happen through the document's getters, which apply the INI
// conversions (base-detected integers, dotted-decimal floats, the
// case-insensitive bool set). Keys repeated within a section keep all
// definitions and reads return the last one. A `[section]` header
// naming an existing section re-opens it and appends.
//
//	d, err := ini.Load(data)
//	if err != nil {
//	    // err is a *token.ErrorRecord: code, 1-based line/col, message
//	}
//	defer d.Close()
//	port := d.Root().Section("webserver").Int64("port", 0)
package ini
