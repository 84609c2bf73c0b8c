package capture

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os/exec"

	"github.com/PDC-hub/Stickman/internal/system"
)

// FFmpegSink streams raw RGBA frames into an ffmpeg child process over
// stdin and lets it encode the clip in real time. One ffmpeg process per
// Start/Finalize cycle.
type FFmpegSink struct {
	OutputPath string
	Encoder    string // h264_videotoolbox, h264_nvenc, libx264
	Quality    int    // CRF for libx264, CQ for nvenc, bitrate/100k for videotoolbox

	ctx    context.Context
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	width  int
	height int
	fps    int
	frames int
}

// NewFFmpegSink returns a sink writing an encoded clip to outputPath.
// ctx cancels the ffmpeg child if the capture is abandoned.
func NewFFmpegSink(ctx context.Context, outputPath, encoder string, quality int) *FFmpegSink {
	return &FFmpegSink{
		OutputPath: outputPath,
		Encoder:    encoder,
		Quality:    quality,
		ctx:        ctx,
	}
}

// Start implements Sink: it launches ffmpeg reading rawvideo from stdin.
func (s *FFmpegSink) Start(width, height, fps int) error {
	if s.cmd != nil {
		return ErrCaptureActive
	}

	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", width, height),
		"-framerate", fmt.Sprintf("%d", fps),
		"-i", "-",
		"-pix_fmt", "yuv420p",
		"-c:v", s.Encoder,
	}
	args = append(args, s.qualityArgs()...)
	args = append(args, s.OutputPath)

	cmd := exec.CommandContext(s.ctx, "ffmpeg", args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("stdin pipe error: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("ffmpeg start error: %w", err)
	}

	s.cmd = cmd
	s.stdin = stdin
	s.width, s.height, s.fps = width, height, fps
	s.frames = 0
	return nil
}

func (s *FFmpegSink) qualityArgs() []string {
	switch s.Encoder {
	case "h264_videotoolbox":
		// videotoolbox has no CRF; map quality to a bitrate instead.
		return []string{"-b:v", fmt.Sprintf("%dk", s.Quality*100)}
	case "h264_nvenc":
		return []string{"-cq", fmt.Sprintf("%d", s.Quality)}
	default: // libx264
		return []string{"-crf", fmt.Sprintf("%d", s.Quality), "-preset", "medium"}
	}
}

// PushFrame implements Sink: it writes one frame of raw RGBA pixels.
func (s *FFmpegSink) PushFrame(img *image.RGBA) error {
	if s.cmd == nil {
		return ErrNoCapture
	}
	if err := s.writeRawRGBA(img); err != nil {
		return fmt.Errorf("write raw frame error: %w", err)
	}
	s.frames++
	return nil
}

func (s *FFmpegSink) writeRawRGBA(img *image.RGBA) error {
	bounds := img.Bounds()
	// ffmpeg expects tightly packed pixels starting at the origin.
	if img.Stride != bounds.Dx()*4 || bounds.Min.X != 0 || bounds.Min.Y != 0 {
		packed := system.GetFrame(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		defer system.PutFrame(packed)
		draw.Draw(packed, packed.Bounds(), img, bounds.Min, draw.Src)
		img = packed
	}
	_, err := s.stdin.Write(img.Pix)
	return err
}

// Finalize implements Sink: it closes the stream, waits for ffmpeg, and
// returns the artifact.
func (s *FFmpegSink) Finalize() (Artifact, error) {
	if s.cmd == nil {
		return Artifact{}, ErrNoCapture
	}
	cmd := s.cmd
	s.cmd = nil

	if err := s.stdin.Close(); err != nil {
		return Artifact{}, fmt.Errorf("stdin close error: %w", err)
	}
	if err := cmd.Wait(); err != nil {
		return Artifact{}, fmt.Errorf("ffmpeg wait error: %w", err)
	}

	var durationMS int64
	if s.fps > 0 {
		durationMS = int64(s.frames) * 1000 / int64(s.fps)
	}
	return Artifact{Path: s.OutputPath, Frames: s.frames, DurationMS: durationMS}, nil
}
