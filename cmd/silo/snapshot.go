package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/silo/pkg/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the records in a snapshot",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fatal("Error loading config: %v", err)
		}
		store, err := cfg.BuildStore()
		if err != nil {
			fatal("Error building store: %v", err)
		}

		snap, err := store.Load(cmd.Context(), collectionName(cfg))
		if err != nil {
			if errors.Is(err, domain.ErrSnapshotNotFound) {
				fmt.Println("No snapshot found.")
				return
			}
			fatal("Error loading snapshot: %v", err)
		}

		if len(snap.Records) == 0 {
			fmt.Println("Snapshot is empty.")
			return
		}

		fmt.Printf("Records in %q (saved %s):\n", snap.Collection, snap.SavedAt.Format(time.RFC3339))
		for _, rec := range snap.Records {
			fmt.Printf("- %s  age=%s  size=%dB\n",
				rec.ID,
				time.Since(rec.UpdatedAt).Round(time.Second),
				len(rec.Payload),
			)
		}
	},
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <session-id>",
	Short: "Inspect one record in a snapshot",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fatal("Error loading config: %v", err)
		}
		store, err := cfg.BuildStore()
		if err != nil {
			fatal("Error building store: %v", err)
		}

		snap, err := store.Load(cmd.Context(), collectionName(cfg))
		if err != nil {
			fatal("Error loading snapshot: %v", err)
		}

		for _, rec := range snap.Records {
			if rec.ID != args[0] {
				continue
			}
			// Pretty print JSON
			data, err := json.MarshalIndent(rec, "", "  ")
			if err != nil {
				fatal("Error marshaling record: %v", err)
			}
			fmt.Println(string(data))
			return
		}

		fatal("Record %q not found", args[0])
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <session-id>...",
	Short: "Remove one or more records from a snapshot",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fatal("Error loading config: %v", err)
		}
		store, err := cfg.BuildStore()
		if err != nil {
			fatal("Error building store: %v", err)
		}

		collection := collectionName(cfg)
		snap, err := store.Load(cmd.Context(), collection)
		if err != nil {
			fatal("Error loading snapshot: %v", err)
		}

		doomed := make(map[string]bool, len(args))
		for _, id := range args {
			doomed[id] = true
		}

		kept := snap.Records[:0]
		removed := 0
		for _, rec := range snap.Records {
			if doomed[rec.ID] {
				removed++
				continue
			}
			kept = append(kept, rec)
		}
		snap.Records = kept
		snap.SavedAt = time.Now()

		if err := store.Save(cmd.Context(), collection, snap); err != nil {
			fatal("Error saving snapshot: %v", err)
		}
		fmt.Printf("Removed %d record(s), %d remain.\n", removed, len(snap.Records))
	},
}

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Drop records older than the TTL from a snapshot",
	Long:  `Offline compaction: removes every record whose age meets or exceeds the TTL and writes the snapshot back. Useful for locations whose store is not currently running.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fatal("Error loading config: %v", err)
		}
		if ttlFlag, _ := cmd.Flags().GetString("ttl"); ttlFlag != "" {
			cfg.TTL = ttlFlag
		}
		ttl, err := cfg.ParseTTL()
		if err != nil {
			fatal("Error: %v", err)
		}
		if ttl <= 0 {
			fatal("A positive --ttl (or config ttl) is required to purge")
		}

		store, err := cfg.BuildStore()
		if err != nil {
			fatal("Error building store: %v", err)
		}

		collection := collectionName(cfg)
		snap, err := store.Load(cmd.Context(), collection)
		if err != nil {
			fatal("Error loading snapshot: %v", err)
		}

		now := time.Now()
		kept := snap.Records[:0]
		purged := 0
		for _, rec := range snap.Records {
			if now.Sub(rec.UpdatedAt) >= ttl {
				purged++
				continue
			}
			kept = append(kept, rec)
		}
		snap.Records = kept
		snap.SavedAt = now

		if err := store.Save(cmd.Context(), collection, snap); err != nil {
			fatal("Error saving snapshot: %v", err)
		}
		fmt.Printf("Purged %d stale record(s), %d remain.\n", purged, len(snap.Records))
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate a snapshot with generated records",
	Long:  `Writes N records with random session ids into the snapshot. Intended for smoke-testing adapters and dashboards.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fatal("Error loading config: %v", err)
		}
		store, err := cfg.BuildStore()
		if err != nil {
			fatal("Error building store: %v", err)
		}

		count, _ := cmd.Flags().GetInt("count")
		if count <= 0 {
			fatal("--count must be positive")
		}

		collection := collectionName(cfg)
		snap, err := store.Load(cmd.Context(), collection)
		if err != nil {
			if !errors.Is(err, domain.ErrSnapshotNotFound) {
				fatal("Error loading snapshot: %v", err)
			}
			snap = domain.NewSnapshot(collection, nil, time.Now())
		}

		now := time.Now()
		for i := 0; i < count; i++ {
			id := uuid.NewString()
			payload := fmt.Appendf(nil, `{"seeded":true,"n":%d}`, i)
			snap.Records = append(snap.Records, *domain.NewRecord(id, payload, now))
		}
		snap.SavedAt = now

		if err := store.Save(cmd.Context(), collection, snap); err != nil {
			fatal("Error saving snapshot: %v", err)
		}
		fmt.Printf("Seeded %d record(s), snapshot now holds %d.\n", count, len(snap.Records))
	},
}

func init() {
	purgeCmd.Flags().String("ttl", "", "Age threshold (Go duration, e.g. 24h); overrides config ttl")
	seedCmd.Flags().Int("count", 10, "Number of records to generate")

	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(purgeCmd)
	rootCmd.AddCommand(seedCmd)
}
