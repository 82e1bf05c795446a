package dto

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBody_DegradesToEmpty(t *testing.T) {
	inputs := []string{"", "   ", "{not json", "[1,2,3]", `"texto"`, "null", "42"}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			b := ParseBody(strings.NewReader(in))
			assert.NotNil(t, b)
			assert.Empty(t, b)
		})
	}

	assert.Empty(t, ParseBody(nil))
}

func TestBody_String(t *testing.T) {
	b := ParseBody(strings.NewReader(`{"nombre":"  Vela  ","telefono":3001234567,"nulo":null,"lista":[1]}`))

	assert.Equal(t, "Vela", b.String("nombre"))
	assert.Equal(t, "3001234567", b.String("telefono"))
	assert.Equal(t, "", b.String("nulo"))
	assert.Equal(t, "", b.String("missing"))
	assert.Equal(t, "", b.String("lista"))
	assert.Equal(t, "  Vela  ", b.RawString("nombre"))
	assert.Equal(t, "Transferencia", b.StringOr("metodo_pago", "Transferencia"))
	assert.Equal(t, "", b.StringOr("nombre_x", ""))
}

func TestBody_OptionalString(t *testing.T) {
	b := ParseBody(strings.NewReader(`{"imagen_url":null,"video_url":" https://v "}`))

	require.NotNil(t, b.OptionalString("imagen_url"))
	assert.Equal(t, "", *b.OptionalString("imagen_url"))
	assert.Equal(t, "https://v", *b.OptionalString("video_url"))
	assert.Nil(t, b.OptionalString("descripcion"))
}

func TestBody_Decimal(t *testing.T) {
	b := ParseBody(strings.NewReader(`{"a":0.1,"b":"25000","c":"abc","d":null,"e":true,"f":"NaN","g":1e3,"h":""}`))

	require.NotNil(t, b.Decimal("a"))
	assert.True(t, b.Decimal("a").Equal(decimal.RequireFromString("0.1")))
	assert.True(t, b.Decimal("b").Equal(decimal.NewFromInt(25000)))
	assert.True(t, b.Decimal("g").Equal(decimal.NewFromInt(1000)))
	assert.Nil(t, b.Decimal("c"))
	assert.Nil(t, b.Decimal("d"))
	assert.Nil(t, b.Decimal("e"))
	assert.Nil(t, b.Decimal("f"))
	assert.Nil(t, b.Decimal("h"))
	assert.Nil(t, b.Decimal("missing"))

	assert.True(t, b.DecimalOr("missing", decimal.Zero).IsZero())
	assert.True(t, b.DecimalOr("d", decimal.Zero).IsZero())
	assert.Nil(t, b.DecimalOr("c", decimal.Zero))
}

func TestBody_Bool(t *testing.T) {
	b := ParseBody(strings.NewReader(`{"t":true,"f":false,"s":"false","n":1,"x":[]}`))

	assert.True(t, b.Bool("t", false))
	assert.False(t, b.Bool("f", true))
	assert.False(t, b.Bool("s", true))
	assert.True(t, b.Bool("missing", true))
	assert.True(t, b.Bool("x", true))
	assert.Nil(t, b.OptionalBool("missing"))
	assert.False(t, *b.OptionalBool("f"))
}

func TestBody_Int(t *testing.T) {
	b := ParseBody(strings.NewReader(`{"a":5,"b":"7","c":"x"}`))

	assert.Equal(t, 5, b.Int("a", 0))
	assert.Equal(t, 7, b.Int("b", 0))
	assert.Equal(t, 1, b.Int("c", 1))
	assert.Equal(t, 1, b.Int("missing", 1))
}

func TestBody_Arrays(t *testing.T) {
	b := ParseBody(strings.NewReader(`{"imagenes":[" a.jpg ",2,null,""],"items":[{"id":"p1"},"x"],"no":"array"}`))

	assert.Equal(t, []string{" a.jpg ", "2", ""}, b.Strings("imagenes"))
	assert.Equal(t, []string{}, b.Strings("no"))

	objs := b.Objects("items")
	require.Len(t, objs, 2)
	assert.Equal(t, "p1", objs[0].String("id"))
	assert.Empty(t, objs[1])
	assert.Nil(t, b.Objects("no"))
}
