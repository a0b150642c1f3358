// Package imaging provides the raster type and image codecs shared by the edit
// client and the MCP server.
//
// The central type is Buffer, an RGB or RGBA raster whose channel values are
// normalized float32 in [0,1]. Conversion to and from 8-bit images rounds to
// the nearest level, so a PNG round trip of 8-bit content is lossless.
//
// # Channel Layout
//
// Buffers carry 3 (RGB) or 4 (RGBA) interleaved channels. Any other count is a
// format error reported as ErrUnsupportedChannels. Encoding to PNG always drops
// alpha; decoding remote payloads always yields RGB.
//
// # Payloads
//
// Remote services return images as base64 text, sometimes wrapped in a data URI
// ("data:image/png;base64,...") and sometimes without '=' padding. DecodePayload
// accepts all of these forms.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Buffers returned by the cache and the
// decoders are never mutated by this package and may be shared read-only.
package imaging
