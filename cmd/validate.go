package cmd

import (
	"context"
	"fmt"
	"travel-map/model"
	"travel-map/store"

	"github.com/spf13/cobra"
)

var validateStrict bool

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "校验行程文档并列出悬空引用",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		src := source()
		out := cmd.OutOrStdout()

		catalog, catalogErr := store.LoadCatalog(ctx, src)
		routes, routesErr := store.LoadRoutes(ctx, src)

		fmt.Fprintf(out, "行程文档校验\n")
		fmt.Fprintf(out, "============\n")

		if catalogErr != nil {
			fmt.Fprintf(out, "%s: 失败\n  %v\n", store.CatalogFile, catalogErr)
		} else {
			fmt.Fprintf(out, "%s: 通过\n", store.CatalogFile)
			fmt.Fprintf(out, "  酒店:       %d\n", len(catalog.Hotels))
			fmt.Fprintf(out, "  布里斯本景点: %d\n", len(catalog.BrisbaneAttractions))
			fmt.Fprintf(out, "  黄金海岸景点: %d\n", len(catalog.GoldCoastAttractions))
			fmt.Fprintf(out, "  行程天数:    %d\n", len(catalog.DailyItinerary))
			for _, loc := range catalog.Locations() {
				if !loc.Category.Known() {
					fmt.Fprintf(out, "  提示: %s 的分类 %q 不在表内\n", loc.ID, loc.Category)
				}
			}
		}

		if routesErr != nil {
			fmt.Fprintf(out, "%s: 失败\n  %v\n", store.RoutesFile, routesErr)
		} else {
			fmt.Fprintf(out, "%s: 通过\n", store.RoutesFile)
			for _, name := range []string{model.RouteBrisbaneToGoldCoast, model.RouteBrisbaneToMovieWorld} {
				if _, ok := routes.Route(name); ok {
					fmt.Fprintf(out, "  路线 %s\n", name)
				} else {
					fmt.Fprintf(out, "  缺少路线 %s\n", name)
				}
			}
		}

		var refs []store.DanglingRef
		if catalog != nil {
			refs = store.CheckReferences(catalog)
		}
		if len(refs) > 0 {
			fmt.Fprintf(out, "\n悬空引用 (运行时会被跳过)\n")
			fmt.Fprintf(out, "------------------------\n")
			for _, ref := range refs {
				fmt.Fprintf(out, "  %s\n", ref)
			}
		}

		if catalogErr != nil || routesErr != nil {
			return fmt.Errorf("行程文档校验失败")
		}
		if validateStrict && len(refs) > 0 {
			return fmt.Errorf("发现 %d 个悬空引用", len(refs))
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "存在悬空引用时返回非零退出码")
	rootCmd.AddCommand(validateCmd)
}
