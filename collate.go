package zval

import (
	"strings"
	"sync"

	"github.com/maypok86/otter"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// collation holds the collators and sort keys of the configured locale.
type collation struct {
	// collate.Collator keeps scratch buffers and must not be shared between goroutines
	collators sync.Pool

	// Cache up to 4096 sort keys: sorting compares each element log(n) times
	keys otter.Cache[string, string]
}

var currentCollation = newCollation(language.Und)

func newCollation(tag language.Tag) *collation {
	keys, err := otter.MustBuilder[string, string](4096).Build()
	if err != nil {
		panic(err)
	}

	c := &collation{keys: keys}
	c.collators.New = func() any {
		return collate.New(tag)
	}

	return c
}

func resetCollators() {
	previous := currentCollation
	currentCollation = newCollation(locale)
	previous.keys.Close()
}

func (c *collation) key(s string) string {
	if k, ok := c.keys.Get(s); ok {
		return k
	}

	col := c.collators.Get().(*collate.Collator)
	var buf collate.Buffer
	k := string(col.KeyFromString(&buf, s))
	c.collators.Put(col)

	c.keys.SetIfAbsent(s, k)

	return k
}

// CompareLocale compares two strings with the collation rules of the locale
// set by WithLocale, like strcoll. The default locale uses the root
// collation order.
func CompareLocale(a, b string) int {
	c := currentCollation

	return strings.Compare(c.key(a), c.key(b))
}
