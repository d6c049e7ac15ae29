package sitescan

// Unassigned is the section index of an asset outside every section.
const Unassigned = -1

// ImageType distinguishes <img> elements from CSS backgrounds.
type ImageType string

// Image types.
const (
	ImageTypeImg        ImageType = "img"
	ImageTypeBackground ImageType = "background"
)

// VideoPlatform identifies where a video is hosted.
type VideoPlatform string

// Video platforms.
const (
	PlatformYouTube VideoPlatform = "youtube"
	PlatformHTML5   VideoPlatform = "html5"
)

// Download records the outcome of fetching an asset.
// Downloaded is true iff LocalPath is set and Error is empty.
type Download struct {
	Downloaded bool   `json:"downloaded"`
	LocalPath  string `json:"localPath,omitempty"`
	Error      string `json:"error,omitempty"`
}

// MarkDownloaded records a successful download at localPath.
func (d *Download) MarkDownloaded(localPath string) {
	d.Downloaded = true
	d.LocalPath = localPath
	d.Error = ""
}

// MarkFailed records a failed download.
func (d *Download) MarkFailed(err error) {
	d.Downloaded = false
	d.LocalPath = ""
	d.Error = ErrorMessage(err)
	if ErrorCode(err) == EINTERNAL {
		d.Error = err.Error()
	}
}

// Image is an <img> or CSS background image reference.
type Image struct {
	OriginalURL  string    `json:"originalUrl"`
	SectionIndex int       `json:"sectionIndex"`
	Type         ImageType `json:"type"`
	Alt          string    `json:"alt,omitempty"`
	Width        float64   `json:"width"`
	Height       float64   `json:"height"`
	Top          float64   `json:"top"`
	ContentHash  string    `json:"contentHash,omitempty"`
	Bytes        int       `json:"bytes,omitempty"`
	Download
}

// Font is a web font family referenced by the page.
type Font struct {
	OriginalURL  string   `json:"originalUrl"`
	SectionIndex int      `json:"sectionIndex"`
	Family       string   `json:"family"`
	Source       string   `json:"source"`
	Weights      []string `json:"weights"`
	Styles       []string `json:"styles"`
	Top          float64  `json:"top"`
	Download
}

// Video is an embedded or native video.
type Video struct {
	OriginalURL  string        `json:"originalUrl"`
	SectionIndex int           `json:"sectionIndex"`
	Platform     VideoPlatform `json:"platform"`
	VideoID      string        `json:"videoId,omitempty"`
	PosterURL    string        `json:"posterUrl,omitempty"`
	Top          float64       `json:"top"`
	Download
}

// AssetStats summarizes download outcomes for one asset type. Assets that
// were never attempted count toward Total only.
type AssetStats struct {
	Total      int `json:"total"`
	Downloaded int `json:"downloaded"`
	Failed     int `json:"failed"`
}

func statsOf(downloads []Download) AssetStats {
	st := AssetStats{Total: len(downloads)}
	for _, d := range downloads {
		switch {
		case d.Downloaded:
			st.Downloaded++
		case d.Error != "":
			st.Failed++
		}
	}
	return st
}

// ImageStats summarizes images.
func ImageStats(images []Image) AssetStats {
	d := make([]Download, len(images))
	for i := range images {
		d[i] = images[i].Download
	}
	return statsOf(d)
}

// FontStats summarizes fonts.
func FontStats(fonts []Font) AssetStats {
	d := make([]Download, len(fonts))
	for i := range fonts {
		d[i] = fonts[i].Download
	}
	return statsOf(d)
}

// VideoStats summarizes videos.
func VideoStats(videos []Video) AssetStats {
	d := make([]Download, len(videos))
	for i := range videos {
		d[i] = videos[i].Download
	}
	return statsOf(d)
}
