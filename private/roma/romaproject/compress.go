// Copyright 2024 The roma Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package romaproject

import (
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"go.uber.org/multierr"
)

const zstdFileExt = ".zst"

// compressFile writes filePath+".zst" and removes filePath.
//
// Returns the path of the compressed file.
func compressFile(filePath string) (string, error) {
	compressedFilePath := filePath + zstdFileExt
	if err := writeZstdFile(compressedFilePath, filePath); err != nil {
		// Do not leave a truncated file behind.
		return "", multierr.Append(err, removeIfExists(compressedFilePath))
	}
	if err := os.Remove(filePath); err != nil {
		return "", err
	}
	return compressedFilePath, nil
}

func writeZstdFile(compressedFilePath string, filePath string) (retErr error) {
	file, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer func() {
		retErr = multierr.Append(retErr, file.Close())
	}()
	compressedFile, err := os.Create(compressedFilePath)
	if err != nil {
		return err
	}
	defer func() {
		retErr = multierr.Append(retErr, compressedFile.Close())
	}()
	encoder, err := zstd.NewWriter(compressedFile)
	if err != nil {
		return err
	}
	if _, err := io.Copy(encoder, file); err != nil {
		return multierr.Append(err, encoder.Close())
	}
	return encoder.Close()
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}
