package catalog

import (
	"archive/zip"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

const oneMiB int64 = 1024 * 1024

// unzip extracts all files of src into dest. At most readByteLimit uncompressed bytes are written.
func unzip(src string, dest string, readByteLimit int64) (files []string, err error) {
	r, err := zip.OpenReader(src)
	if err != nil {
		return nil, err
	}
	defer func(toClose *zip.ReadCloser) {
		cErr := toClose.Close()
		if cErr != nil {
			// report close errors
			if err == nil {
				err = cErr
			} else {
				err = errors.Wrap(err, cErr.Error())
			}
		}
	}(r)

	if err = os.MkdirAll(dest, 0750); err != nil {
		return nil, err
	}

	var readBytes int64
	for _, f := range r.File {
		path, err := sanitizeArchivePath(dest, f.Name)
		if err != nil {
			return nil, err
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(path, 0750); err != nil {
				return nil, err
			}

			continue
		}

		unsafeZipUncompressedSize := f.UncompressedSize64
		if unsafeZipUncompressedSize == 0 || unsafeZipUncompressedSize > math.MaxInt64 {
			return nil, fmt.Errorf("cannot write file %s, uncompressed size is > maxInt64 or 0", f.Name)
		}
		// #nosec G115 checked above
		zipUncompressedSize := int64(unsafeZipUncompressedSize)

		// prevent zip bombs
		readBytes += zipUncompressedSize
		if readBytes > readByteLimit {
			return nil, fmt.Errorf("cannot write next file, reached limit of %dMiB", readByteLimit/oneMiB)
		}

		d, err := writeFile(f, path, zipUncompressedSize)
		if err != nil {
			return nil, err
		}
		files = append(files, d)
	}

	return files, err
}

func writeFile(zippedFile *zip.File, destFile string, readBytesN int64) (_ string, err error) {
	destFile = filepath.Clean(destFile)

	if err := os.MkdirAll(filepath.Dir(destFile), 0750); err != nil {
		return "", err
	}

	// #nosec G304 sanitizeArchivePath does already a path cleanup
	f, err := os.OpenFile(destFile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return "", err
	}
	defer func(toClose *os.File) {
		cErr := toClose.Close()
		if cErr != nil {
			// report close errors
			if err == nil {
				err = cErr
			} else {
				err = errors.Wrap(err, cErr.Error())
			}
		}
	}(f)

	rc, err := zippedFile.Open()
	if err != nil {
		return "", err
	}
	defer func(toClose io.ReadCloser) {
		cErr := toClose.Close()
		if cErr != nil {
			// report close errors
			if err == nil {
				err = cErr
			} else {
				err = errors.Wrap(err, cErr.Error())
			}
		}
	}(rc)

	if _, err := io.CopyN(f, rc, readBytesN); err != nil {
		return "", err
	}

	if err := f.Sync(); err != nil {
		return "", err
	}

	return destFile, nil
}

func sanitizeArchivePath(dest, filename string) (string, error) {
	base := filepath.Clean(dest)
	path := filepath.Join(base, filename)
	if path == base || strings.HasPrefix(path, base+string(filepath.Separator)) {
		return path, nil
	}

	// Zip slip
	return "", fmt.Errorf("illegal file path %s", path)
}
