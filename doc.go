/*
go-actiontrack locates a single person in a video stream, stabilises the
location across frames with a visual tracker and classifies the person's gross
motion as standing, walking or running, upper body active or moving.

Each frame passes through a Pipeline which decides whether to trust the
tracker or run the detector bank (face as upper body proxy, upper body cascade
then full body detector), smooths the box, scores motion in the upper and lower
halves of the box by frame differencing and applies a fixed set of rules over a
short history window.

Detectors and trackers are OpenCV primitives used through GoCV.  See the
example subdirectory for a webcam and MJPEG streaming program.
*/
package actiontrack
