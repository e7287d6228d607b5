package cmd

import (
	"context"
	"fmt"
	"strconv"
	"travel-map/dayview"
	"travel-map/mapsurface"
	"travel-map/markers"
	"travel-map/model"
	"travel-map/utils"

	"github.com/spf13/cobra"
)

var dayCmd = &cobra.Command{
	Use:   "day N",
	Short: "显示某一天的行程和地图视野",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("无效的天数: %s", args[0])
		}

		st := loadStore(context.Background())
		catalog, err := st.Catalog()
		if err != nil {
			return err
		}

		var entry *dayview.Entry
		for _, e := range dayview.Timeline(catalog, n) {
			if e.Selected {
				entry = &e
				break
			}
		}
		if entry == nil {
			return fmt.Errorf("第 %d 天不存在", n)
		}

		fmt.Printf("%s 第 %d 天  %s  %s\n", entry.Icon, entry.Day.Day, entry.Date, entry.City)
		fmt.Printf("%s\n", entry.Title)
		for _, a := range entry.Activities {
			fmt.Printf("  • %s\n", a)
		}
		if entry.HotelName != "" {
			fmt.Printf("住宿: %s\n", entry.HotelName)
		}

		locations := dayview.DayLocations(catalog, n)
		if len(locations) == 0 {
			fmt.Println("\n当天没有地点, 地图视野保持不变")
			return nil
		}

		fmt.Printf("\n地点 (%d):\n", len(locations))
		points := make([]model.Point, 0, len(locations))
		for _, loc := range locations {
			fmt.Printf("  %s %s (%s)\n", markers.IconFor(loc.Category), loc.Name, loc.Coordinates)
			points = append(points, loc.Coordinates)
		}

		b, _ := utils.BoundsOf(points...)
		opts := mapsurface.DefaultOptions()
		fmt.Printf("\n视野: 南 %.4f 西 %.4f 北 %.4f 东 %.4f\n", b.South, b.West, b.North, b.East)
		fmt.Printf("中心: %s  缩放: %d\n", b.Center(), utils.ZoomFor(b, opts.Width, opts.Height))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dayCmd)
}
