package tracegraph

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOrphanageDropOlderThan(t *testing.T) {
	o := NewOrphanage()
	parent := id(1)
	early := mkSpan(2, 1, 1, 0, 0)
	late := mkSpan(3, 1, 1, 0, 0)

	o.Add(parent, early, time.Unix(0, 0))
	o.Add(parent, late, time.Unix(100, 0))

	dropped := o.DropOlderThan(time.Unix(50, 0))
	assert.Equal(t, 1, dropped)
	assert.Equal(t, 1, o.Len())

	remaining := o.TakeChildren(parent)
	assert.Equal(t, []Span{late}, remaining)
	assert.Equal(t, 0, o.Len())
}

func TestOrphanageTakeChildrenPreservesOrder(t *testing.T) {
	o := NewOrphanage()
	parent := id(1)
	a := mkSpan(2, 1, 1, 0, 0)
	b := mkSpan(3, 1, 1, 0, 0)
	c := mkSpan(4, 1, 1, 0, 0)

	o.Add(parent, a, time.Unix(0, 0))
	o.Add(parent, b, time.Unix(0, 0))
	o.Add(parent, c, time.Unix(0, 0))

	assert.Equal(t, []Span{a, b, c}, o.TakeChildren(parent))
	assert.Nil(t, o.TakeChildren(parent))
}
