package colour

import (
	"github.com/disintegration/imaging"
)

// DefaultMaxDimension is the longest side an image is reduced to before quantization.
const DefaultMaxDimension = 150

// Downsample bounds the image so its larger side is at most maxDimension,
// preserving aspect ratio to within one pixel. Images already inside the
// bound are returned as-is. Resampling uses an area-average (box) filter.
func Downsample(img *Image, maxDimension int) (*Image, error) {
	if maxDimension <= 0 {
		return nil, &InvalidConfigError{Field: "maxDimension", Value: maxDimension, Reason: "must be at least 1"}
	}
	if img == nil || img.Len() == 0 {
		return nil, &EmptyImageError{}
	}

	width, height := img.width, img.height
	if width <= maxDimension && height <= maxDimension {
		return img, nil
	}

	targetWidth, targetHeight := scaledSize(width, height, maxDimension)
	resized := imaging.Resize(img.toNRGBA(), targetWidth, targetHeight, imaging.Box)

	return FromImage(resized)
}

// scaledSize fits width x height inside a maxDimension square.
// The long side becomes exactly maxDimension and the short side is rounded
// to nearest, never below one pixel.
func scaledSize(width, height, maxDimension int) (int, int) {
	if width >= height {
		h := max((height*maxDimension+width/2)/width, 1)
		return maxDimension, h
	}
	w := max((width*maxDimension+height/2)/height, 1)
	return w, maxDimension
}
