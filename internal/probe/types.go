package probe

import "strconv"

// FormatInfo holds container-level metadata from ffprobe's format section.
type FormatInfo struct {
	Filename   string
	FormatName string
	Duration   float64 // Seconds.
	Size       int64   // Bytes.
	BitRate    int64   // Bits/sec.
}

// VideoStream holds the parsed properties of the first video stream.
type VideoStream struct {
	Index        int
	Codec        string
	PixFmt       string
	Width        int
	Height       int
	BitRate      int64
	AvgFrameRate string
	Frames       int  // nb_frames; 0 when the container does not report it.
	HasAlpha     bool // libvpx alpha_mode tag.
}

// ProbeResult is the parsed output of one ffprobe JSON call. PrimaryVideo
// is nil when the file has no video stream.
type ProbeResult struct {
	Format       FormatInfo
	PrimaryVideo *VideoStream
}

// VideoBitRate returns the video stream bitrate in bits/sec, falling back
// to the format-level bitrate when the stream value is unavailable.
func (p *ProbeResult) VideoBitRate() int64 {
	if p.PrimaryVideo != nil && p.PrimaryVideo.BitRate > 0 {
		return p.PrimaryVideo.BitRate
	}
	return p.Format.BitRate
}

// Resolution returns "WxH" for the video stream, or "unknown".
func (p *ProbeResult) Resolution() string {
	if p.PrimaryVideo == nil || p.PrimaryVideo.Width <= 0 || p.PrimaryVideo.Height <= 0 {
		return "unknown"
	}
	return strconv.Itoa(p.PrimaryVideo.Width) + "x" + strconv.Itoa(p.PrimaryVideo.Height)
}

// Codec returns the video codec name, or "unknown".
func (p *ProbeResult) Codec() string {
	if p.PrimaryVideo == nil || p.PrimaryVideo.Codec == "" {
		return "unknown"
	}
	return p.PrimaryVideo.Codec
}
