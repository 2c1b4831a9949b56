//go:build darwin

package ocr

/*
#cgo CFLAGS: -x objective-c -fobjc-arc
#cgo LDFLAGS: -framework Vision -framework ImageIO -framework CoreGraphics -framework Foundation
#include <stdlib.h>
#include <string.h>
#import <Foundation/Foundation.h>
#import <ImageIO/ImageIO.h>
#import <Vision/Vision.h>

static char *bridge_extract_text(const unsigned char *data, int length) {
	NSData *imageData = [NSData dataWithBytes:data length:(NSUInteger)length];
	CGImageSourceRef source = CGImageSourceCreateWithData((__bridge CFDataRef)imageData, NULL);
	if (source == NULL) {
		return NULL;
	}
	CGImageRef image = CGImageSourceCreateImageAtIndex(source, 0, NULL);
	CFRelease(source);
	if (image == NULL) {
		return NULL;
	}

	VNRecognizeTextRequest *request = [[VNRecognizeTextRequest alloc] init];
	request.recognitionLevel = VNRequestTextRecognitionLevelAccurate;
	request.usesLanguageCorrection = YES;

	VNImageRequestHandler *handler = [[VNImageRequestHandler alloc] initWithCGImage:image options:@{}];
	NSError *error = nil;
	BOOL ok = [handler performRequests:@[ request ] error:&error];
	CGImageRelease(image);
	if (!ok) {
		return NULL;
	}

	NSMutableArray<NSString *> *lines = [NSMutableArray array];
	for (VNRecognizedTextObservation *observation in request.results) {
		VNRecognizedText *candidate = [[observation topCandidates:1] firstObject];
		if (candidate != nil) {
			[lines addObject:candidate.string];
		}
	}
	if (lines.count == 0) {
		return NULL;
	}
	return strdup([[lines componentsJoinedByString:@"\n"] UTF8String]);
}
*/
import "C"

import (
	"context"
	"unsafe"
)

// visionEngine runs recognition through the Vision framework. The native
// request is synchronous and cannot be interrupted; ctx is only consulted
// before dispatch.
type visionEngine struct{}

// NewEngine creates the macOS Vision engine.
func NewEngine() Engine {
	return visionEngine{}
}

func (visionEngine) ExtractText(ctx context.Context, image []byte) (string, error) {
	if len(image) == 0 {
		return "", ErrNoImage
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	result := C.bridge_extract_text((*C.uchar)(unsafe.Pointer(&image[0])), C.int(len(image)))
	if result == nil {
		return "", ErrNoText
	}
	defer C.free(unsafe.Pointer(result))
	return C.GoString(result), nil
}
