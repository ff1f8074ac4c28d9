// Package ffmpeg models each external-tool invocation as a Command that
// builds its own argument vector, and an Executor that runs commands
// blocking, captures stderr, and verifies expected outputs.
//
// Command variants:
//   - DownloadCommand: stream-copy a URL to a local file.
//   - ClipCommand: cut a time window with explicit codecs (-ss/-to before -i
//     for fast seeking).
//   - SegmentCommand: stream-copy split into fixed-duration pieces with
//     per-piece timestamps reset to zero.
//   - ConcatCommand: merge inputs via a temporary concat-demuxer manifest,
//     removed again whatever the outcome.
//   - PaletteCommand / GifCommand / FrameCommand: GIF palette generation,
//     palette-based GIF encoding, and single-frame thumbnail extraction.
//
// A non-zero exit or a missing expected output surfaces as *ToolError with
// the diagnostic stream preserved verbatim; no command panics.
package ffmpeg
