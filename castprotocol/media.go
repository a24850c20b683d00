package castprotocol

import "go2tv.app/go2tv/v2/castprotocol/v2/cast"

// MediaTrack and NewSubtitleTrack are re-exported from castprotocol/v2/cast
// so existing callers of this package's subtitle-loading helpers don't
// need to import the v2 package directly.
type MediaTrack = cast.MediaTrack

var NewSubtitleTrack = cast.NewSubtitleTrack
