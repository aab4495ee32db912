// SPDX-FileCopyrightText: 2025 The Fontgrab Authors
// SPDX-License-Identifier: EUPL-1.2

package archive_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fontgrab/fontgrab/internal/archive"
	"github.com/fontgrab/fontgrab/internal/domain"
	"github.com/fontgrab/fontgrab/internal/testutil"
)

func zipFixture(t *testing.T, entries map[string][]byte) []byte {
	t.Helper()

	data, err := testutil.BuildZip(entries)
	require.NoError(t, err)

	return data
}

func fileManagerReturning(path string, data []byte) *testutil.MockFileManager {
	fm := new(testutil.MockFileManager)
	fm.On("ReadFile", path).Return(data, nil)

	return fm
}

func TestExtractor_Extract_SelectsFontEntries(t *testing.T) {
	t.Parallel()

	data := zipFixture(t, map[string][]byte{
		"Fonts/OTF/Satoshi-Regular.otf": []byte("otf-bytes"),
		"Fonts/TTF/Satoshi-Bold.ttf":    []byte("ttf-bytes"),
		"Fonts/WEB/Satoshi-Light.woff2": []byte("woff2-bytes"),
		"LICENSE.txt":                   []byte("license"),
	})

	extractor := archive.NewExtractor(fileManagerReturning("/cache/satoshi.zip", data), false)

	fonts, err := extractor.Extract("/cache/satoshi.zip")
	require.NoError(t, err)
	require.Len(t, fonts, 2)

	// Directory paths inside the archive are flattened to base names.
	names := map[string]string{}
	for _, font := range fonts {
		names[font.Name] = string(font.Data)
	}

	assert.Equal(t, "otf-bytes", names["Satoshi-Regular.otf"])
	assert.Equal(t, "ttf-bytes", names["Satoshi-Bold.ttf"])
}

func TestExtractor_Extract_WebFontsEnabled(t *testing.T) {
	t.Parallel()

	data := zipFixture(t, map[string][]byte{
		"Satoshi-Light.woff2": []byte("woff2-bytes"),
		"Satoshi-Light.eot":   []byte("eot-bytes"),
		"Satoshi-Light.woff":  []byte("woff-bytes"),
	})

	extractor := archive.NewExtractor(fileManagerReturning("/cache/satoshi.zip", data), true)

	fonts, err := extractor.Extract("/cache/satoshi.zip")
	require.NoError(t, err)
	assert.Len(t, fonts, 3)
}

func TestExtractor_Extract_NoFontFiles(t *testing.T) {
	t.Parallel()

	data := zipFixture(t, map[string][]byte{
		"LICENSE.txt": []byte("license only"),
	})

	extractor := archive.NewExtractor(fileManagerReturning("/cache/baz.zip", data), false)

	fonts, err := extractor.Extract("/cache/baz.zip")
	require.ErrorIs(t, err, domain.ErrNoFontFiles)
	assert.Equal(t, "no font files found", err.Error())
	assert.Nil(t, fonts)
}

func TestExtractor_Extract_CorruptArchive(t *testing.T) {
	t.Parallel()

	extractor := archive.NewExtractor(fileManagerReturning("/cache/bad.zip", []byte("not a zip")), false)

	fonts, err := extractor.Extract("/cache/bad.zip")
	require.ErrorIs(t, err, domain.ErrArchive)
	assert.Nil(t, fonts)
}

func TestExtractor_Extract_Deterministic(t *testing.T) {
	t.Parallel()

	data := zipFixture(t, map[string][]byte{
		"A.ttf": []byte("aaa"),
		"B.otf": []byte("bbb"),
	})

	extractor := archive.NewExtractor(fileManagerReturning("/cache/x.zip", data), false)

	first, err := extractor.Extract("/cache/x.zip")
	require.NoError(t, err)

	second, err := extractor.Extract("/cache/x.zip")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExtractor_ExtractTo_WritesFlattenedFiles(t *testing.T) {
	t.Parallel()

	data := zipFixture(t, map[string][]byte{
		"deep/nested/Eiko-Regular.ttf": []byte("eiko"),
	})

	fm := fileManagerReturning("/cache/eiko.zip", data)
	fm.On("EnsureDir", "/out/eiko").Return(nil)
	fm.On("WriteFile", "/out/eiko/Eiko-Regular.ttf", []byte("eiko")).Return(nil)

	extractor := archive.NewExtractor(fm, false)

	names, err := extractor.ExtractTo("/cache/eiko.zip", "/out/eiko")
	require.NoError(t, err)
	assert.Equal(t, []string{"Eiko-Regular.ttf"}, names)

	fm.AssertExpectations(t)
}

func TestExtractor_Accepts(t *testing.T) {
	t.Parallel()

	plain := archive.NewExtractor(new(testutil.MockFileManager), false)
	web := archive.NewExtractor(new(testutil.MockFileManager), true)

	assert.True(t, plain.Accepts("Satoshi-Regular.ttf"))
	assert.True(t, plain.Accepts("SATOSHI.OTF"))
	assert.False(t, plain.Accepts("Satoshi.woff2"))
	assert.False(t, plain.Accepts("readme.md"))
	assert.False(t, plain.Accepts("font.ttf.bak"))

	assert.True(t, web.Accepts("Satoshi.woff2"))
	assert.True(t, web.Accepts("Satoshi.woff"))
	assert.True(t, web.Accepts("Satoshi.eot"))
}
