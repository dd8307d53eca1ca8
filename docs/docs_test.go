package docs

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

var routerAnnotation = regexp.MustCompile(`@Router\s+(\S+)\s+\[(\w+)\]`)

func TestDoc_RutasCoincidenConHandlers(t *testing.T) {
	raw, err := swag.ReadDoc()
	require.NoError(t, err)

	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	documentadas := []string{}
	for path, ops := range doc.Paths {
		for method := range ops {
			documentadas = append(documentadas, strings.ToUpper(method)+" "+path)
		}
	}

	anotadas := []string{}
	err = filepath.WalkDir("../internal", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		for _, m := range routerAnnotation.FindAllStringSubmatch(string(b), -1) {
			anotadas = append(anotadas, strings.ToUpper(m[2])+" "+m[1])
		}
		return nil
	})
	require.NoError(t, err)

	require.NotEmpty(t, anotadas)
	assert.ElementsMatch(t, anotadas, documentadas)
}
