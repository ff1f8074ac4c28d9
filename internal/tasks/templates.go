package tasks

// Prebuilt task files for the common workflows. Callers marshal these to
// JSON as a starting point for their own task files.

// DownloadAndSplit fetches a remote source and splits the download into
// pieces of at most maxSize.
func DownloadAndSplit(url, name, maxSize string) *File {
	return &File{
		Global: GlobalSettings{MaxSize: maxSize},
		Tasks: []Task{
			{Type: TypeDownload, URL: url, OutputName: name},
			{Type: TypeSplit, Input: name + ".mp4", OutputName: name + "_part"},
		},
	}
}

// ChapterClips cuts one clip per chapter interval with stream copy.
func ChapterClips(input, name string, chapters []IntervalSpec) *File {
	return &File{
		Global: GlobalSettings{VideoCodec: "copy", AudioCodec: "copy"},
		Tasks: []Task{
			{Type: TypeClip, Input: input, OutputName: name, Intervals: chapters},
		},
	}
}

// HighlightGif samples short moments across the whole file and renders them
// as one high-quality GIF with a thumbnail grid.
func HighlightGif(input, name string) *File {
	return &File{
		Tasks: []Task{
			{
				Type:         TypeGif,
				Input:        input,
				OutputName:   name,
				NumClips:     10,
				ClipDuration: 2,
				TimeGap:      5,
				HighQuality:  true,
				Thumbnails:   true,
				Grid:         true,
			},
		},
	}
}
