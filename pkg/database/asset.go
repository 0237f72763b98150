package database

import (
	"io"
	"os"

	"github.com/spf13/afero"
)

// copyAsset 把内置资源拷贝到端上目标路径，落盘后才返回
func copyAsset(src afero.Fs, assetPath string, dst afero.Fs, target string) error {
	in, err := src.Open(assetPath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := dst.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// removeFile 删除文件，文件不存在不算错误
func removeFile(fs afero.Fs, path string) error {
	if err := fs.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// removeStoreFiles 删除库文件及其 wal/shm/journal
func removeStoreFiles(fs afero.Fs, path string) error {
	if err := removeFile(fs, path); err != nil {
		return err
	}
	return removeSidecars(fs, path)
}

func removeSidecars(fs afero.Fs, path string) error {
	for _, suffix := range sidecars {
		if err := removeFile(fs, path+suffix); err != nil {
			return err
		}
	}
	return nil
}
