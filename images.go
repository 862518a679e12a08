// Copyright 2026 肖其顿 (XIAO QI DUN)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package jwwdecode

import "bytes"

var (
	jpegMagic = []byte{0xFF, 0xD8, 0xFF}
	pngMagic  = []byte{0x89, 0x50, 0x4E, 0x47}
	bmpMagic  = []byte{0x42, 0x4D}
	gifMagic  = []byte{0x47, 0x49, 0x46, 0x38}
)

// detectImageFormat inspects the leading bytes of an embedded image blob
// and returns the container format they identify, or ImageFormatUnknown
// if none of the recognized magic sequences match.
// Detection is byte-exact and never validates deeper structure.
func detectImageFormat(data []byte) ImageFormat {
	switch {
	case bytes.HasPrefix(data, jpegMagic):
		return ImageFormatJpeg
	case bytes.HasPrefix(data, pngMagic):
		return ImageFormatPng
	case bytes.HasPrefix(data, bmpMagic):
		return ImageFormatBmp
	case bytes.HasPrefix(data, gifMagic):
		return ImageFormatGif
	default:
		return ImageFormatUnknown
	}
}

// decodeEmbeddedImages reads the version >= 700 trailer: a sequence of
// (index, file_size, raw bytes) blobs running to the end of input. It
// is a no-op, returning nil, when there is nothing left to read.
func decodeEmbeddedImages(r *Reader) ([]EmbeddedImage, error) {
	var images []EmbeddedImage
	for !r.AtEnd() {
		start := r.Offset()
		index, err := r.I32()
		if err != nil {
			return nil, err
		}
		fileSize, err := r.I32()
		if err != nil {
			return nil, err
		}
		if fileSize < 0 || fileSize > int32(r.Remaining()) {
			return nil, errInvalidImageTrailer(start)
		}
		data, err := r.Bytes(int(fileSize))
		if err != nil {
			return nil, err
		}
		owned := make([]byte, len(data))
		copy(owned, data)
		images = append(images, EmbeddedImage{
			Index:    index,
			FileSize: fileSize,
			Data:     owned,
			Format:   detectImageFormat(owned),
		})
	}
	return images, nil
}
