// skeltool is a CLI utility for working with armature skeleton documents.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/armature/internal/assets"
	"github.com/Faultbox/armature/internal/config"
	"github.com/Faultbox/armature/internal/logger"
	"github.com/Faultbox/armature/pkg/formats"
	"github.com/Faultbox/armature/pkg/skeleton"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "skins":
		cmdSkins(args)
	case "attachments", "att":
		cmdAttachments(args)
	case "merge":
		cmdMerge(args, false)
	case "copy":
		cmdMerge(args, true)
	case "watch":
		cmdWatch(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`skeltool - armature skeleton document utility

Usage:
  skeltool <command> [options]

Commands:
  info <file>                          Show document information
  skins <file>                         List skins
  attachments <file> <skin>            List a skin's attachment bindings
  merge <file> <dst> <src> [output]    Merge skin src into dst (shared attachments)
  copy <file> <dst> <src> [output]     Merge skin src into dst (deep-copied attachments)
  watch [options] [dir...]             Revalidate documents on change

Watch options:
  -config <file>   Path to config file
  -debug           Enable debug logging
  -data <dirs>     Comma-separated skeleton directories
  -log-file <path> Write logs to this file

Examples:
  skeltool info hero.skel.yaml
  skeltool attachments hero.skel.yaml iron
  skeltool merge hero.skel.yaml iron gold hero-merged.skel.yaml
  skeltool watch -debug ./skeletons`)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func parseFile(path string) *skeleton.SkeletonData {
	data, err := formats.ParseSkelFile(path)
	if err != nil {
		fail("Error: %v", err)
	}
	return data
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fail("Usage: skeltool info <file>")
	}
	data := parseFile(args[0])

	total := 0
	for _, skin := range data.Skins {
		total += skin.Size()
	}

	fmt.Printf("Skeleton:    %s\n", data.Name)
	fmt.Printf("Bones:       %d\n", len(data.Bones))
	fmt.Printf("Slots:       %d\n", len(data.Slots))
	fmt.Printf("Constraints: %d\n", len(data.Constraints))
	fmt.Printf("Skins:       %d (%d attachments)\n", len(data.Skins), total)
	if data.DefaultSkin != nil {
		fmt.Printf("Default:     %s\n", data.DefaultSkin.Name())
	}
}

func cmdSkins(args []string) {
	if len(args) < 1 {
		fail("Usage: skeltool skins <file>")
	}
	data := parseFile(args[0])

	for _, skin := range data.Skins {
		marker := " "
		if skin == data.DefaultSkin {
			marker = "*"
		}
		fmt.Printf("%s %-20s %3d attachments  %2d bones  %2d constraints\n",
			marker, skin.Name(), skin.Size(), len(skin.Bones()), len(skin.Constraints()))
	}
}

func cmdAttachments(args []string) {
	if len(args) < 2 {
		fail("Usage: skeltool attachments <file> <skin>")
	}
	data := parseFile(args[0])

	skin := data.FindSkin(args[1])
	if skin == nil {
		fail("Skin not found: %s", args[1])
	}

	for _, entry := range skin.Attachments() {
		slotName := fmt.Sprintf("#%d", entry.SlotIndex)
		if entry.SlotIndex < len(data.Slots) {
			slotName = data.Slots[entry.SlotIndex].Name
		}
		fmt.Printf("%-20s %-20s %s\n", slotName, entry.Name, attachmentType(entry.Attachment))
	}
}

func attachmentType(a skeleton.Attachment) string {
	switch m := a.(type) {
	case *skeleton.RegionAttachment:
		return "region"
	case *skeleton.MeshAttachment:
		if m.ParentMesh() != nil {
			return fmt.Sprintf("mesh (parent %s)", m.ParentMesh().Name())
		}
		return "mesh"
	case *skeleton.BoundingBoxAttachment:
		return "box"
	default:
		return fmt.Sprintf("%T", a)
	}
}

// cmdMerge merges one skin into another, sharing attachments for merge and
// deep-copying them for copy, then writes the document back out.
func cmdMerge(args []string, deep bool) {
	if len(args) < 3 {
		fail("Usage: skeltool merge|copy <file> <dst-skin> <src-skin> [output]")
	}
	data := parseFile(args[0])

	dst := data.FindSkin(args[1])
	if dst == nil {
		fail("Skin not found: %s", args[1])
	}
	src := data.FindSkin(args[2])
	if src == nil {
		fail("Skin not found: %s", args[2])
	}

	var err error
	if deep {
		err = dst.CopySkin(src)
	} else {
		err = dst.AddSkin(src)
	}
	if err != nil {
		fail("Error: %v", err)
	}

	output := args[0]
	if len(args) > 3 {
		output = args[3]
	}
	if err := formats.WriteSkelFile(output, data); err != nil {
		fail("Error: %v", err)
	}
	fmt.Printf("Merged %s into %s (%d attachments), wrote %s\n",
		src.Name(), dst.Name(), dst.Size(), output)
}

// cmdWatch revalidates skeleton documents whenever they change on disk.
func cmdWatch(args []string) {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	config.RegisterFlags(fs)
	_ = fs.Parse(args)

	cfg, err := config.Load()
	if err != nil {
		fail("Error: %v", err)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fail("Error: %v", err)
	}
	defer logger.Sync()

	dirs := fs.Args()
	if len(dirs) == 0 {
		dirs = cfg.Data.SkeletonDirs
	}

	debounce := time.Duration(cfg.Watch.DebounceMS) * time.Millisecond
	watcher, err := assets.NewWatcher(debounce, dirs...)
	if err != nil {
		fail("Error: %v", err)
	}
	defer watcher.Close()

	logger.Info("watching skeleton directories", zap.Strings("dirs", dirs))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case path, ok := <-watcher.Events:
			if !ok {
				return
			}
			if _, err := os.Stat(path); err != nil {
				logger.Info("document removed", zap.String("path", path))
				continue
			}
			data, err := formats.ParseSkelFile(path)
			if err != nil {
				logger.Error("document invalid", zap.String("path", path), zap.Error(err))
				continue
			}
			logger.Info("document ok",
				zap.String("path", path),
				zap.String("skeleton", data.Name),
				zap.Int("skins", len(data.Skins)))
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Error("watch error", zap.Error(err))
		case <-sig:
			logger.Info("shutting down")
			return
		}
	}
}
