package walk

import (
	"context"
	"fmt"
	"sync"
	"time"

	"debtscan/internal/contract"
	"debtscan/schema"
)

// SnapshotAtCommit materializes a snapshot of the repository as it was
// at the given commit, using the git client instead of the working
// tree. File contents are fetched with a bounded worker pool; results
// land in per-file slots so snapshot order never depends on completion
// order.
func SnapshotAtCommit(ctx context.Context, cfg *contract.Config, client contract.GitClient, commit string) (*schema.Snapshot, error) {
	paths, err := client.ListFilesAtRef(ctx, cfg.RepoPath, commit)
	if err != nil {
		return nil, fmt.Errorf("cannot list files at %s: %w", commit, err)
	}

	fileTimes, err := client.GetFileTimesAtRef(ctx, cfg.RepoPath, commit)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve file times at %s: %w", commit, err)
	}

	snap := &schema.Snapshot{RepoPath: cfg.RepoPath}

	type target struct {
		path string
		lang schema.Language
	}
	var targets []target
	for _, path := range paths {
		if isLock, isManifest := schema.ManifestNames[path]; isManifest {
			snap.Manifests = append(snap.Manifests, schema.ManifestStat{
				Path:    path,
				ModTime: fileTimes[path],
				IsLock:  isLock,
			})
		}
		if contract.ShouldIgnore(path, cfg.Excludes) {
			continue
		}
		if lang, ok := schema.LanguageForPath(path); ok {
			targets = append(targets, target{path: path, lang: lang})
		}
	}

	type slot struct {
		file    schema.SourceFile
		warning string
		loaded  bool
	}
	slots := make([]slot, len(targets))

	idxCh := make(chan int, len(targets))
	var wg sync.WaitGroup
	for range cfg.Workers {
		wg.Go(func() {
			for i := range idxCh {
				if ctx.Err() != nil {
					return
				}
				tgt := targets[i]
				content, err := client.ShowFileAtRef(ctx, cfg.RepoPath, commit, tgt.path)
				if err != nil {
					slots[i].warning = fmt.Sprintf("cannot read %s at %s: %v", tgt.path, commit, err)
					continue
				}
				if IsBinary(content) {
					slots[i].warning = fmt.Sprintf("skipping binary file %s", tgt.path)
					continue
				}
				modTime := fileTimes[tgt.path]
				if modTime.IsZero() {
					modTime = time.Now()
				}
				slots[i].file = NewSourceFile(tgt.path, tgt.lang, content, modTime)
				slots[i].loaded = true
			}
		})
	}
	for i := range targets {
		idxCh <- i
	}
	close(idxCh)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for i := range slots {
		if slots[i].loaded {
			snap.Files = append(snap.Files, slots[i].file)
		} else if slots[i].warning != "" {
			snap.Warnings = append(snap.Warnings, slots[i].warning)
		}
	}
	return snap, nil
}
