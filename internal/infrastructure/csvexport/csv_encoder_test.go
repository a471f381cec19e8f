package csvexport_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/showroom-api/internal/domain/entity"
	"github.com/jhoicas/showroom-api/internal/infrastructure/csvexport"
)

func TestEncodeCatalogCSV(t *testing.T) {
	out, err := csvexport.NewEncoder().EncodeCatalogCSV([]*entity.Product{
		{ID: 1, Name: "Oak Table", Price: "4999", Category: "Table", Details: "solid, oak", Images: []entity.Image{{1}}},
		{ID: 2, Name: "Stool", Price: "250"},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,name,price,category,details,image_count", lines[0])
	assert.Equal(t, `1,Oak Table,4999,Table,"solid, oak",1`, lines[1])
	assert.Equal(t, "2,Stool,250,Other,,0", lines[2], "sin fotos se exporta 0")
}

func TestDecodeRoundTrip(t *testing.T) {
	enc, err := csvexport.NewEncoder().EncodeCatalogCSV([]*entity.Product{
		{ID: 3, Name: "Bed", Price: "12000", Category: "Bed", Details: "king"},
	})
	require.NoError(t, err)

	rows, err := csvexport.Decode(bytes.NewReader(enc))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Bed", rows[0].Name)
	assert.Equal(t, "12000", rows[0].Price)
	assert.Equal(t, int64(3), rows[0].ID)
}

func TestDecodeSeedFile(t *testing.T) {
	rows, err := csvexport.Decode(strings.NewReader("name,price,category,details\nSofa,300,Sofa,3 seats\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Sofa", rows[0].Name)
	assert.Zero(t, rows[0].ID)
}
