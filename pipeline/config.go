package pipeline

import (
	"time"

	"github.com/hoopreel/hoopreel/discovery"
	"github.com/hoopreel/hoopreel/ffmpeg"
	"github.com/hoopreel/hoopreel/key"
	"github.com/hoopreel/hoopreel/retrieve"
	"github.com/hoopreel/hoopreel/source"
	"github.com/hoopreel/hoopreel/stats"
	"github.com/hoopreel/hoopreel/where"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// ConfigOptions wires the configured tools around src.
func ConfigOptions(src source.Source, statsProvider mo.Option[stats.Provider]) Options {
	fetcher := &retrieve.YtDLP{
		Executable: viper.GetString(key.RetrievalExecutable),
		Format:     viper.GetString(key.RetrievalFormat),
	}
	retrievalTimeout := seconds(key.RetrievalTimeout)

	return Options{
		Source: src,
		Discoverer: discovery.New(src, statsProvider, discovery.Options{
			RecentGames: viper.GetInt(key.DiscoveryRecentGames),
			Concurrency: viper.GetInt(key.DiscoveryConcurrency),
		}),
		Retrievers: func(dir string) Retriever {
			return retrieve.New(dir, fetcher, retrievalTimeout)
		},
		Stitcher:     StitcherFromConfig(),
		Workers:      viper.GetInt(key.RetrievalWorkers),
		DownloadsDir: where.Downloads(),
		OutputDir:    where.Output(),
	}
}

// StitcherFromConfig builds the ffmpeg stitcher from the stitch.* keys.
func StitcherFromConfig() *ffmpeg.Stitcher {
	return ffmpeg.New(ffmpeg.Options{
		Executable: viper.GetString(key.StitchExecutable),
		Timeout:    seconds(key.StitchTimeout),
		Encoding: ffmpeg.Encoding{
			VideoCodec:   viper.GetString(key.StitchVideoCodec),
			AudioCodec:   viper.GetString(key.StitchAudioCodec),
			Preset:       viper.GetString(key.StitchPreset),
			CRF:          viper.GetInt(key.StitchCRF),
			AudioBitrate: viper.GetString(key.StitchAudioBitrate),
		},
	})
}

func seconds(k string) time.Duration {
	return time.Duration(viper.GetInt(k)) * time.Second
}
