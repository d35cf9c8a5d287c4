package extract_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slop-at/slop/extract"
	vocab "github.com/slop-at/slop/vocabulary/slop"
)

func TestLineOf(t *testing.T) {
	text := "first line\nsecond line\nthird"

	tests := []struct {
		pos  int
		want int
	}{
		{-1, 1},
		{0, 1},
		{9, 1},
		{10, 1}, // the newline itself still counts as line 1
		{11, 2},
		{22, 2},
		{23, 3},
		{100, 3}, // past the end clamps to the last line
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, extract.LineOf(text, tt.pos), "LineOf(%d)", tt.pos)
	}
}

func TestStaticDeterministic(t *testing.T) {
	stub := extract.NewStatic(
		extract.Rule{Term: "Ada Lovelace", Type: vocab.EntityPerson},
		extract.Rule{Term: "Babbage", Type: vocab.EntityPerson},
	)
	text := "Ada Lovelace worked with Babbage.\nBabbage built engines."

	first, err := stub.Extract(context.Background(), text)
	require.NoError(t, err)
	second, err := stub.Extract(context.Background(), text)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	require.Len(t, first, 3)
	assert.Equal(t, "Ada Lovelace", first[0].Text)
	assert.Equal(t, 1, first[0].StartLine)
	assert.Equal(t, "Babbage", first[1].Text)
	assert.Equal(t, 1, first[1].StartLine)
	assert.Equal(t, 2, first[2].StartLine)
}

func TestFailingExtractor(t *testing.T) {
	boom := errors.New("model load failed")
	stub := extract.NewFailing(boom)

	_, err := stub.Extract(context.Background(), "anything")
	require.Error(t, err)
	assert.True(t, extract.IsUnavailable(err))
	assert.ErrorIs(t, err, boom)
}

func TestNoneExtractor(t *testing.T) {
	entities, err := extract.None{}.Extract(context.Background(), "Ada Lovelace")
	require.NoError(t, err)
	assert.Empty(t, entities)
}
