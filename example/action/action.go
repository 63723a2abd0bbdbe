package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/swdee/go-actiontrack"
	"github.com/swdee/go-actiontrack/detect"
	"github.com/swdee/go-actiontrack/pose"
	"github.com/swdee/go-actiontrack/preprocess"
	"github.com/swdee/go-actiontrack/recorder"
	"github.com/swdee/go-actiontrack/render"
	"github.com/swdee/go-actiontrack/tracker"
	"gocv.io/x/gocv"
)

// Options holds the command line settings not covered by actiontrack.Config
type Options struct {
	Source       string
	SetRes       string
	DisplayScale float64
	Mirror       bool
	Tracker      string
	Person       string
	SSDModel     string
	SSDConfig    string
	SSDLabels    string
	FaceCascade  string
	UpperCascade string
	PoseModel    string
	PoseConfig   string
	PoseMinVis   float64
	HTTPAddr     string
	DB           string
	Cores        string
}

// Demo captures frames from a video source, runs the action pipeline on them
// and shows the annotated result in a window or as an HTTP MJPEG stream
type Demo struct {
	opts     Options
	cfg      actiontrack.Config
	video    *gocv.VideoCapture
	pipeline *actiontrack.Pipeline
	prep     *preprocess.Prep
	hud      *render.HUD
	// estimator is optional and nil when no pose model is given
	estimator pose.Estimator
	// rec is optional and nil when no database is given
	rec *recorder.Recorder
	// closers are released in reverse order on Close
	closers []io.Closer
}

// NewDemo opens the video source and builds the detectors, tracker and
// pipeline described by the options
func NewDemo(cfg actiontrack.Config, opts Options) (*Demo, error) {

	d := &Demo{
		opts: opts,
		cfg:  cfg,
	}

	err := d.build()

	if err != nil {
		d.Close()
		return nil, err
	}

	return d, nil
}

func (d *Demo) build() error {

	var err error

	d.video, err = gocv.OpenVideoCapture(d.opts.Source)

	if err != nil {
		return fmt.Errorf("error opening video source %s: %w", d.opts.Source, err)
	}

	if d.opts.SetRes != "" {
		w, h, err := actiontrack.ParseResolution(d.opts.SetRes)

		if err != nil {
			return err
		}

		d.video.Set(gocv.VideoCaptureFrameWidth, float64(w))
		d.video.Set(gocv.VideoCaptureFrameHeight, float64(h))
	}

	faces, err := detect.NewCascadeDetector(d.opts.FaceCascade, detect.FaceCascadeParams())

	if err != nil {
		return err
	}

	d.closers = append(d.closers, faces)

	upper, err := detect.NewCascadeDetector(d.opts.UpperCascade, detect.UpperBodyCascadeParams())

	if err != nil {
		return err
	}

	d.closers = append(d.closers, upper)

	var people detect.RegionDetector

	switch d.opts.Person {
	case "hog":
		hog, err := detect.NewHOGDetector()

		if err != nil {
			return err
		}

		d.closers = append(d.closers, hog)
		people = hog

	case "ssd":
		params := detect.DefaultSSDParams()

		if d.opts.SSDLabels != "" {
			labels, err := detect.LoadLabels(d.opts.SSDLabels)

			if err != nil {
				return err
			}

			params.PersonClass, err = detect.PersonClass(labels)

			if err != nil {
				return err
			}
		}

		ssd, err := detect.NewSSDDetector(d.opts.SSDModel, d.opts.SSDConfig, params)

		if err != nil {
			return err
		}

		d.closers = append(d.closers, ssd)
		people = ssd

	default:
		return fmt.Errorf("unknown person detector %q, use 'hog' or 'ssd'", d.opts.Person)
	}

	bank := detect.NewDefaultBank(faces, upper, people)

	kind, err := tracker.ParseKind(d.opts.Tracker)

	if err != nil {
		return err
	}

	var factory tracker.Factory

	if kind != tracker.KindNone {
		factory, err = tracker.NewFactory(kind)

		if err != nil {
			return err
		}
	}

	d.pipeline, err = actiontrack.New(d.cfg, bank, factory)

	if err != nil {
		return err
	}

	d.closers = append(d.closers, d.pipeline)

	d.prep = preprocess.NewPrep(d.opts.Mirror)
	d.closers = append(d.closers, d.prep)

	d.hud, err = render.NewHUD(14)

	if err != nil {
		return err
	}

	d.closers = append(d.closers, d.hud)

	if d.opts.PoseModel != "" {
		op, err := pose.NewOpenPose(d.opts.PoseModel, d.opts.PoseConfig)

		if err != nil {
			return err
		}

		d.closers = append(d.closers, op)
		d.estimator = op
	}

	if d.opts.DB != "" {
		d.rec, err = recorder.New(d.opts.DB, d.opts.Source)

		if err != nil {
			return err
		}

		d.closers = append(d.closers, d.rec)
	}

	log.Printf("Detector strategies: %v, tracker: %s", bank.Strategies(), kind)

	return nil
}

// Run reads and processes frames until the context is cancelled, the source
// ends or 'q' is pressed in the window.  Annotated frames are published to
// the broadcaster when one is given, otherwise shown in a window
func (d *Demo) Run(ctx context.Context, bc *Broadcaster) error {

	var window *gocv.Window

	if bc == nil {
		window = gocv.NewWindow("action")
		defer window.Close()
	}

	img := gocv.NewMat()
	defer img.Close()

	outImg := gocv.NewMat()
	defer outImg.Close()

	stats := actiontrack.NewStats(time.Second, time.Now())
	hudLines := []string{"fps=0.0"}

	var scaler *preprocess.Scaler

	for {
		if ctx.Err() != nil {
			return nil
		}

		if ok := d.video.Read(&img); !ok {
			log.Printf("End of video source")
			return nil
		}

		if img.Empty() {
			continue
		}

		frame, gray := d.prep.Process(img)

		res, err := d.pipeline.Process(frame, gray)

		if err != nil {
			if errors.Is(err, actiontrack.ErrFrameSize) {
				return err
			}

			log.Printf("Error processing frame: %v", err)
			continue
		}

		stats.Add(res)

		if rep, ok := stats.Tick(time.Now()); ok {
			hudLines = []string{rep.String()}
			log.Print(rep.String())

			if d.cfg.Debug {
				debug := rep.Debug(frame.Cols(), frame.Rows(), res.Tracking)
				hudLines = append(hudLines, debug)
				log.Print(debug)
			}
		}

		if d.rec != nil {
			if err := d.rec.Observe(res); err != nil {
				log.Printf("Error recording frame: %v", err)
			}
		}

		d.annotate(frame, res, hudLines)

		if scaler == nil {
			scaler = preprocess.NewScaler(frame.Cols(), frame.Rows(), d.opts.DisplayScale)
			log.Printf("Frame size %dx%d, mirrored: %t, display scale %.2f to %dx%d",
				frame.Cols(), frame.Rows(), d.prep.Mirror(), scaler.Factor(),
				scaler.Size().X, scaler.Size().Y)
		}

		scaler.Scale(frame, &outImg)

		if bc != nil {
			buf, err := gocv.IMEncode(".jpg", outImg)

			if err != nil {
				log.Printf("Error encoding frame: %v", err)
				continue
			}

			bc.Publish(buf.GetBytes())
			buf.Close()
			continue
		}

		window.IMShow(outImg)

		if window.WaitKey(1) == 'q' {
			return nil
		}
	}
}

// annotate draws the pipeline result and statistics onto the frame
func (d *Demo) annotate(frame gocv.Mat, res actiontrack.Result, hudLines []string) {

	overlay := render.Overlay{
		Box:     res.Box,
		Mode:    res.Mode,
		Action:  res.Action.String(),
		Delta:   res.Delta,
		Centers: d.pipeline.Centers(),
		Debug:   d.cfg.Debug,
	}

	if d.estimator != nil && res.Box != nil {
		lms, err := d.estimator.Estimate(frame)

		if err != nil {
			log.Printf("Error estimating pose: %v", err)
		}

		overlay.Landmarks = lms
	}

	poseStyle := render.DefaultPoseStyle()
	poseStyle.MinVisibility = d.opts.PoseMinVis

	overlay.Draw(&frame, poseStyle, render.DefaultTrailStyle())

	size := d.hud.PanelSize(hudLines)
	origin := image.Pt(10, frame.Rows()-size.Y-10)

	if err := d.hud.Draw(&frame, hudLines, origin); err != nil {
		log.Printf("Error drawing statistics: %v", err)
	}
}

// Close releases the video source and all pipeline resources
func (d *Demo) Close() {

	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i].Close(); err != nil {
			log.Printf("Error closing resource: %v", err)
		}
	}

	if d.video != nil {
		d.video.Close()
	}
}

// loadConfig returns the config file settings, or the defaults, with any
// flags given on the command line applied on top
func loadConfig(path string, flags actiontrack.FileConfig) (actiontrack.Config, error) {

	cfg := actiontrack.DefaultConfig()

	if path != "" {
		var err error
		cfg, err = actiontrack.LoadConfig(path)

		if err != nil {
			return cfg, err
		}
	}

	cfg = flags.Apply(cfg)

	return cfg, cfg.Validate()
}

func main() {
	// disable logging timestamps
	log.SetFlags(0)

	// read in cli flags
	configFile := flag.String("config", "", "JSON config file, flags given on the command line override it")
	minArea := flag.Int("min-area", 12000, "Minimum full body box area in pixels")
	history := flag.Int("history", 10, "Number of frames used for action classification")
	smoothAlpha := flag.Float64("smooth-alpha", 0.45, "Box smoothing weight of the newest frame [0-1]")
	detectInterval := flag.Int("detect-interval", 6, "Re-run detection every N frames while tracking, 0 disables")
	fullBody := flag.Bool("full-body", false, "Only use the full body person detector")
	debug := flag.Bool("debug", false, "Enable debug logging and overlay")

	opts := Options{}
	flag.StringVar(&opts.Source, "source", "0", "Camera index, video file or stream URL")
	flag.StringVar(&opts.SetRes, "set-res", "", "Request a capture resolution, format WxH")
	flag.Float64Var(&opts.DisplayScale, "display-scale", 1.0, "Scale factor of the displayed frames")
	flag.BoolVar(&opts.Mirror, "mirror", false, "Flip frames horizontally")
	flag.StringVar(&opts.Tracker, "tracker", "auto", "Tracker [auto|csrt|kcf|mil|template|none]")
	flag.StringVar(&opts.Person, "person", "hog", "Full body person detector [hog|ssd]")
	flag.StringVar(&opts.SSDModel, "ssd-model", "../data/MobileNetSSD_deploy.caffemodel", "MobileNet SSD model file")
	flag.StringVar(&opts.SSDConfig, "ssd-config", "../data/MobileNetSSD_deploy.prototxt", "MobileNet SSD config file")
	flag.StringVar(&opts.SSDLabels, "ssd-labels", "", "MobileNet SSD labels file used to find the person class, defaults to VOC class 15")
	flag.StringVar(&opts.FaceCascade, "face-cascade", "../data/haarcascade_frontalface_default.xml", "Face Haar cascade file")
	flag.StringVar(&opts.UpperCascade, "upper-cascade", "../data/haarcascade_upperbody.xml", "Upper body Haar cascade file")
	flag.StringVar(&opts.PoseModel, "pose-model", "", "OpenPose COCO model file, enables the pose overlay")
	flag.StringVar(&opts.PoseConfig, "pose-config", "", "OpenPose COCO config file")
	flag.Float64Var(&opts.PoseMinVis, "pose-min-visibility", 0.35, "Minimum landmark visibility drawn on the pose overlay")
	flag.StringVar(&opts.HTTPAddr, "a", "", "HTTP Address to stream on instead of a window, format address:port")
	flag.StringVar(&opts.DB, "db", "", "SQLite database file to record the action timeline to")
	flag.StringVar(&opts.Cores, "cores", "", "CPU cores to pin to, eg: 4-7 or 0,2")

	flag.Parse()

	// only flags given on the command line override the config file
	var fc actiontrack.FileConfig

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "min-area":
			fc.MinArea = minArea
		case "history":
			fc.History = history
		case "smooth-alpha":
			fc.SmoothAlpha = smoothAlpha
		case "detect-interval":
			fc.DetectInterval = detectInterval
		case "full-body":
			fc.FullBody = fullBody
		case "debug":
			fc.Debug = debug
		}
	})

	cfg, err := loadConfig(*configFile, fc)

	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	if opts.Cores != "" {
		cores, err := actiontrack.ParseCores(opts.Cores)

		if err != nil {
			log.Fatalf("Error parsing cores: %v", err)
		}

		if err := actiontrack.SetCPUAffinity(cores); err != nil {
			log.Printf("Failed to set CPU Affinity: %v", err)
		} else if pinned, err := actiontrack.GetCPUAffinity(); err == nil {
			log.Printf("Running on CPU cores %v", pinned)
		}
	}

	demo, err := NewDemo(cfg, opts)

	if err != nil {
		log.Fatalf("Error creating demo: %v", err)
	}

	defer demo.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var bc *Broadcaster

	if opts.HTTPAddr != "" {
		bc = NewBroadcaster()

		mux := http.NewServeMux()
		mux.HandleFunc("/stream", bc.Stream)

		srv := &http.Server{Addr: opts.HTTPAddr, Handler: mux}

		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("HTTP server failed: %v", err)
				stop()
			}
		}()

		defer srv.Close()

		log.Printf("Open browser and view video at http://%s/stream", opts.HTTPAddr)
	}

	if err := demo.Run(ctx, bc); err != nil {
		log.Printf("Error running demo: %v", err)
	}
}
