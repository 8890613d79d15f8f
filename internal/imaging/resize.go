package imaging

import (
	"bytes"

	img "github.com/disintegration/imaging"
)

const (
	maxWidth  = 800
	maxHeight = 600
	quality   = 80
)

// Fit は画像を800x600のボックスに収まるよう縮小し、JPEG(品質80)で返す。
// 帯域節約のためのベストエフォートであり、失敗してもアップロードは止めない。
// デコードできないデータ（非画像など）はそのまま元のバイト列を返す。
func Fit(data []byte) []byte {
	src, err := img.Decode(bytes.NewReader(data))
	if err != nil {
		return data
	}

	resized := img.Fit(src, maxWidth, maxHeight, img.Lanczos)

	var buf bytes.Buffer
	if err := img.Encode(&buf, resized, img.JPEG, img.JPEGQuality(quality)); err != nil {
		return data
	}
	return buf.Bytes()
}
