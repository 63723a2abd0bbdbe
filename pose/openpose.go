package pose

import (
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// ErrModelLoad is returned when the pose model can not be loaded
var ErrModelLoad = errors.New("error loading pose model")

// cocoParts maps the OpenPose COCO heatmap index to the landmark name for the
// joints drawn on the upper body skeleton
var cocoParts = map[int]string{
	0:  Nose,
	2:  RightShoulder,
	3:  RightElbow,
	4:  RightWrist,
	5:  LeftShoulder,
	6:  LeftElbow,
	7:  LeftWrist,
	8:  RightHip,
	11: LeftHip,
}

// OpenPose is an Estimator running an OpenPose COCO model through the OpenCV
// DNN module.  Each joint's landmark is the peak of its heatmap and the peak
// value is used as the visibility
type OpenPose struct {
	net       gocv.Net
	inputSize image.Point
}

// NewOpenPose loads the OpenPose model and its config, eg:
// pose_iter_440000.caffemodel and openpose_pose_coco.prototxt
func NewOpenPose(model, config string) (*OpenPose, error) {

	net := gocv.ReadNet(model, config)

	if net.Empty() {
		net.Close()
		return nil, fmt.Errorf("%w: %s", ErrModelLoad, model)
	}

	return &OpenPose{
		net:       net,
		inputSize: image.Pt(368, 368),
	}, nil
}

// Estimate returns the upper body landmarks found in frame
func (o *OpenPose) Estimate(frame gocv.Mat) ([]Landmark, error) {

	blob := gocv.BlobFromImage(frame, 1.0/255.0, o.inputSize,
		gocv.NewScalar(0, 0, 0, 0), false, false)
	defer blob.Close()

	o.net.SetInput(blob, "")

	prob := o.net.Forward("")
	defer prob.Close()

	// output is 1 x parts x rows x cols
	size := prob.Size()

	if len(size) != 4 {
		return nil, fmt.Errorf("unexpected pose output shape %v", size)
	}

	parts, rows, cols := size[1], size[2], size[3]
	landmarks := make([]Landmark, 0, len(cocoParts))

	for i := 0; i < parts; i++ {

		name, ok := cocoParts[i]

		if !ok {
			continue
		}

		heatmap, err := prob.FromPtr(rows, cols, gocv.MatTypeCV32F, 0, i)

		if err != nil {
			return nil, fmt.Errorf("error reading heatmap %d: %w", i, err)
		}

		_, peak, _, loc := gocv.MinMaxLoc(heatmap)
		heatmap.Close()

		landmarks = append(landmarks, Landmark{
			Name:       name,
			X:          (float64(loc.X) + 0.5) / float64(cols),
			Y:          (float64(loc.Y) + 0.5) / float64(rows),
			Visibility: float64(peak),
		})
	}

	return landmarks, nil
}

// Close frees the network
func (o *OpenPose) Close() error {
	return o.net.Close()
}
