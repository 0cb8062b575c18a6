package recipient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseList(t *testing.T) {
	list := ParseList([]string{"p1", "", "p2"}, []string{"g1", ""})

	assert.Equal(t, []Recipient{
		{ID: "p1", Kind: KindIndividual},
		{ID: "p2", Kind: KindIndividual},
		{ID: "g1", Kind: KindGroup},
	}, list)
}

func TestParseListEmpty(t *testing.T) {
	assert.Empty(t, ParseList(nil, nil))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "individual", KindIndividual.String())
	assert.Equal(t, "group", KindGroup.String())
}
