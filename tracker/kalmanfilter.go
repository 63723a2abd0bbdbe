package tracker

import (
	"errors"
	"fmt"

	"github.com/swdee/go-actiontrack/geometry"
	"gonum.org/v1/gonum/mat"
)

const (
	// ndim is the number of measured values (cx, cy, w, h)
	ndim = 4
	// sdim is the state size, the measured values plus their velocities
	sdim = 2 * ndim
)

// KalmanState is the state of a constant velocity Kalman filter over a box
// in (cx, cy, w, h) form
type KalmanState struct {
	// Mean is the 8 element state vector (cx, cy, w, h, vx, vy, vw, vh)
	Mean *mat.VecDense
	// Cov is the 8x8 state covariance
	Cov *mat.Dense
}

// Box returns the box of the current state estimate
func (s *KalmanState) Box() geometry.Box {

	cx, cy := s.Mean.AtVec(0), s.Mean.AtVec(1)
	w, h := s.Mean.AtVec(2), s.Mean.AtVec(3)

	return geometry.Box{
		X: int(cx - w/2),
		Y: int(cy - h/2),
		W: int(w),
		H: int(h),
	}
}

// KalmanFilter smooths a sequence of box measurements with a constant
// velocity motion model.  Process and measurement noise are scaled by the
// box height
type KalmanFilter struct {
	stdWeightPosition float64
	stdWeightVelocity float64
	motionMat         *mat.Dense
	updateMat         *mat.Dense
}

// NewKalmanFilter initializes and returns a new KalmanFilter
func NewKalmanFilter(stdWeightPosition, stdWeightVelocity float64) *KalmanFilter {

	// identity with unit time step coupling position to velocity
	motionMat := mat.NewDense(sdim, sdim, nil)

	for i := 0; i < sdim; i++ {
		motionMat.Set(i, i, 1)
	}

	for i := 0; i < ndim; i++ {
		motionMat.Set(i, ndim+i, 1)
	}

	// observe the first four state values
	updateMat := mat.NewDense(ndim, sdim, nil)

	for i := 0; i < ndim; i++ {
		updateMat.Set(i, i, 1)
	}

	return &KalmanFilter{
		stdWeightPosition: stdWeightPosition,
		stdWeightVelocity: stdWeightVelocity,
		motionMat:         motionMat,
		updateMat:         updateMat,
	}
}

// measurement converts a box into the (cx, cy, w, h) measurement vector
func measurement(b geometry.Box) *mat.VecDense {
	return mat.NewVecDense(ndim, []float64{
		float64(b.X) + float64(b.W)/2,
		float64(b.Y) + float64(b.H)/2,
		float64(b.W),
		float64(b.H),
	})
}

// Initiate creates a new state from the first box with zero velocity
func (kf *KalmanFilter) Initiate(b geometry.Box) *KalmanState {

	z := measurement(b)
	h := z.AtVec(3)

	mean := mat.NewVecDense(sdim, nil)

	for i := 0; i < ndim; i++ {
		mean.SetVec(i, z.AtVec(i))
	}

	pos := 2 * kf.stdWeightPosition * h
	vel := 10 * kf.stdWeightVelocity * h

	cov := mat.NewDense(sdim, sdim, nil)

	for i := 0; i < ndim; i++ {
		cov.Set(i, i, pos*pos)
		cov.Set(ndim+i, ndim+i, vel*vel)
	}

	return &KalmanState{Mean: mean, Cov: cov}
}

// Predict advances the state one time step
func (kf *KalmanFilter) Predict(s *KalmanState) {

	h := s.Mean.AtVec(3)
	pos := kf.stdWeightPosition * h
	vel := kf.stdWeightVelocity * h

	motionCov := mat.NewDense(sdim, sdim, nil)

	for i := 0; i < ndim; i++ {
		motionCov.Set(i, i, pos*pos)
		motionCov.Set(ndim+i, ndim+i, vel*vel)
	}

	var mean mat.VecDense
	mean.MulVec(kf.motionMat, s.Mean)
	s.Mean = &mean

	var fp, cov mat.Dense
	fp.Mul(kf.motionMat, s.Cov)
	cov.Mul(&fp, kf.motionMat.T())
	cov.Add(&cov, motionCov)
	s.Cov = &cov
}

// Update corrects the state with a measured box
func (kf *KalmanFilter) Update(s *KalmanState, b geometry.Box) error {

	projectedMean, projectedCov := kf.project(s)

	chol := mat.Cholesky{}

	if ok := chol.Factorize(projectedCov); !ok {
		return errors.New("failed to factorize projected covariance")
	}

	// solve S * K^T = (P * H^T)^T for the kalman gain
	var pht mat.Dense
	pht.Mul(s.Cov, kf.updateMat.T())

	var gainT mat.Dense

	if err := chol.SolveTo(&gainT, pht.T()); err != nil {
		return fmt.Errorf("failed to compute kalman gain: %w", err)
	}

	var innovation mat.VecDense
	innovation.SubVec(measurement(b), projectedMean)

	var correction mat.VecDense
	correction.MulVec(gainT.T(), &innovation)

	var mean mat.VecDense
	mean.AddVec(s.Mean, &correction)
	s.Mean = &mean

	// P = P - K * S * K^T
	var ks mat.Dense
	ks.Mul(gainT.T(), projectedCov)

	var ksk mat.Dense
	ksk.Mul(&ks, &gainT)

	var cov mat.Dense
	cov.Sub(s.Cov, &ksk)
	s.Cov = &cov

	return nil
}

// project maps the state into measurement space including measurement noise
func (kf *KalmanFilter) project(s *KalmanState) (*mat.VecDense, *mat.SymDense) {

	std := kf.stdWeightPosition * s.Mean.AtVec(3)

	var projectedMean mat.VecDense
	projectedMean.MulVec(kf.updateMat, s.Mean)

	var tmp, hph mat.Dense
	tmp.Mul(kf.updateMat, s.Cov)
	hph.Mul(&tmp, kf.updateMat.T())

	projectedCov := mat.NewSymDense(ndim, nil)

	for i := 0; i < ndim; i++ {
		for j := i; j < ndim; j++ {
			v := hph.At(i, j)

			if i == j {
				v += std * std
			}

			projectedCov.SetSym(i, j, v)
		}
	}

	return &projectedMean, projectedCov
}
