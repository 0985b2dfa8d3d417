package main

import (
	"log"
	"os"
	"strconv"

	"github.com/nilbuf/blockfs"
	"github.com/nilbuf/blockfs/blockdev"
	"github.com/urfave/cli/v2"
)

func main() {
	app := cli.App{
		Usage: "Manage blockfs disk images",
		Commands: []*cli.Command{
			{
				Name:      "format",
				Usage:     "Create a new disk image and format it",
				Action:    formatImage,
				ArgsUsage: "IMAGE_FILE BLOCK_COUNT",
			},
			{
				Name:      "mkdir",
				Usage:     "Create a directory, with any missing parents",
				Action:    create(true),
				ArgsUsage: "IMAGE_FILE PATH",
			},
			{
				Name:      "touch",
				Usage:     "Create an empty file, with any missing parents",
				Action:    create(false),
				ArgsUsage: "IMAGE_FILE PATH",
			},
			{
				Name:      "rm",
				Usage:     "Remove a file or directory, recursively",
				Action:    remove,
				ArgsUsage: "IMAGE_FILE PATH",
			},
			{
				Name:      "ls",
				Usage:     "List a directory's entries",
				Action:    list,
				ArgsUsage: "IMAGE_FILE PATH",
			},
			{
				Name:      "cat",
				Usage:     "Print a file's contents to stdout",
				Action:    cat,
				ArgsUsage: "IMAGE_FILE PATH",
			},
			{
				Name:      "stat",
				Usage:     "Print the superblock of a mounted image",
				Action:    stat,
				ArgsUsage: "IMAGE_FILE",
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("fatal error: %s", err.Error())
	}
}

func openMounted(imagePath string) (*blockfs.FileSystem, error) {
	info, err := os.Stat(imagePath)
	if err != nil {
		return nil, err
	}

	dev, err := blockdev.Open(imagePath, int(info.Size()/blockdev.BlockSize))
	if err != nil {
		return nil, err
	}
	fs := blockfs.New(dev)
	if err := fs.Mount(); err != nil {
		return nil, err
	}
	return fs, nil
}

func formatImage(c *cli.Context) error {
	imagePath := c.Args().Get(0)
	blockCount, err := strconv.Atoi(c.Args().Get(1))
	if err != nil {
		return cli.Exit("BLOCK_COUNT must be an integer", 1)
	}

	dev, err := blockdev.Init(imagePath, blockCount)
	if err != nil {
		return err
	}
	fs := blockfs.New(dev)
	return fs.Format()
}

func create(isDirectory bool) cli.ActionFunc {
	return func(c *cli.Context) error {
		fs, err := openMounted(c.Args().Get(0))
		if err != nil {
			return err
		}
		return fs.Create(c.Args().Get(1), isDirectory)
	}
}

func remove(c *cli.Context) error {
	fs, err := openMounted(c.Args().Get(0))
	if err != nil {
		return err
	}
	return fs.Remove(c.Args().Get(1))
}

func list(c *cli.Context) error {
	fs, err := openMounted(c.Args().Get(0))
	if err != nil {
		return err
	}
	return fs.List(c.Args().Get(1), os.Stdout)
}

func cat(c *cli.Context) error {
	fs, err := openMounted(c.Args().Get(0))
	if err != nil {
		return err
	}

	const chunkSize = blockfs.BlockSize
	buf := make([]byte, chunkSize)
	var offset int64
	for {
		n, err := fs.Read(c.Args().Get(1), buf, chunkSize, offset)
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
		if _, err := os.Stdout.Write(buf[:n]); err != nil {
			return err
		}
		offset += int64(n)
	}
}

func stat(c *cli.Context) error {
	fs, err := openMounted(c.Args().Get(0))
	if err != nil {
		return err
	}
	return fs.Stat(os.Stdout)
}
