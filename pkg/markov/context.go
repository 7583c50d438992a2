package markov

import (
	"slices"
	"strconv"
	"strings"
)

// Context is the ordered window of preceding tokens that conditions the next
// choice. Its length always equals the order of the model it belongs to.
type Context []string

// Key returns the map key for the context. Each token is prefixed with its
// byte length, so distinct token sequences never share a key even when
// tokens contain spaces.
func (c Context) Key() string {
	var sb strings.Builder
	for _, token := range c {
		sb.WriteString(strconv.Itoa(len(token)))
		sb.WriteByte(':')
		sb.WriteString(token)
	}
	return sb.String()
}

// String returns the context tokens joined by spaces.
func (c Context) String() string {
	return strings.Join(c, " ")
}

// Equal reports whether two contexts hold the same tokens in the same order.
func (c Context) Equal(other Context) bool {
	return slices.Equal(c, other)
}

// advance drops the oldest token and appends next, in place.
func (c Context) advance(next string) {
	copy(c, c[1:])
	c[len(c)-1] = next
}
