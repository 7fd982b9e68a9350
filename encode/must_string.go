package encode

import (
	"bytes"
	"strings"

	"github.com/marciovmf/stdx-go/doc"
)

func MustString(c doc.Cursor, opts ...EncodeOption) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(c, buf, opts...); err != nil {
		panic(err)
	}
	return strings.TrimSpace(buf.String())
}
