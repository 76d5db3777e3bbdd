package docs

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerDocIsValidJSON(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed))

	assert.Equal(t, "Mi Repertorio API", parsed["info"].(map[string]interface{})["title"])

	paths := parsed["paths"].(map[string]interface{})
	assert.Contains(t, paths, "/canciones")
	assert.Contains(t, paths, "/canciones/{id}")
}
