package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func TestHOGDetectorBlankFrame(t *testing.T) {

	hog, err := NewHOGDetector()
	require.NoError(t, err)

	img := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 256, 128, gocv.MatTypeCV8UC3)
	defer img.Close()

	assert.Empty(t, hog.Detect(img))
	assert.NoError(t, hog.Close())
}

func TestCascadeDetectorMissingFile(t *testing.T) {

	_, err := NewCascadeDetector("does-not-exist.xml", FaceCascadeParams())
	assert.ErrorIs(t, err, ErrCascadeLoad)
}
