package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	assert.Equal(t, "Corner Bakery & Coffee", Text("  <b>Corner Bakery</b> & Coffee "))
	assert.Equal(t, "12 Baker Street", Text(`12 Baker Street<script>alert(1)</script>`))
	assert.Equal(t, "", Text("   "))
}
