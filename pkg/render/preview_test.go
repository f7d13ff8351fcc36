package render

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/cbodonnell/pixelbattles/pkg/battle/raster"
	"github.com/cbodonnell/pixelbattles/pkg/battle/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImage_invalid(t *testing.T) {
	_, err := Image(0, 2, nil)
	assert.Error(t, err)

	_, err = Image(2, 2, make([]byte, 15))
	assert.Error(t, err)
}

func TestPreview(t *testing.T) {
	r, err := raster.New(2, 1, nil)
	require.NoError(t, err)
	require.NoError(t, r.Set(1, 0, types.NewPixel(255, 0, 0, 255)))

	tests := []struct {
		name        string
		targetWidth int
		wantWidth   int
		wantHeight  int
	}{
		{"original size", 0, 2, 1},
		{"upscaled", 8, 8, 4},
		{"capped", MaxPreviewWidth * 2, MaxPreviewWidth, MaxPreviewWidth / 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			require.NoError(t, Preview(buf, 2, 1, r.Bytes(), tt.targetWidth))

			img, err := png.Decode(buf)
			require.NoError(t, err)
			bounds := img.Bounds()
			assert.Equal(t, tt.wantWidth, bounds.Dx())
			assert.Equal(t, tt.wantHeight, bounds.Dy())

			white := color.NRGBAModel.Convert(img.At(0, 0)).(color.NRGBA)
			red := color.NRGBAModel.Convert(img.At(bounds.Dx()-1, bounds.Dy()-1)).(color.NRGBA)
			assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, white)
			assert.Equal(t, color.NRGBA{R: 255, G: 0, B: 0, A: 255}, red)
		})
	}
}
