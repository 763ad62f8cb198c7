package main

import (
	"github.com/spf13/cobra"

	"github.com/sdroman/ticketlogger/internal/domain/repository"
)

func regionsCmd(a **app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "regions",
		Short: "Gestión de regiones",
	}

	var listReq repository.PageRequest
	list := &cobra.Command{
		Use:   "list",
		Short: "Listar regiones paginadas",
		RunE: func(c *cobra.Command, args []string) error {
			page, err := (*a).regions.List(c.Context(), listReq)
			if err != nil {
				return err
			}
			return printJSON(page)
		},
	}
	pageFlags(list, &listReq)

	var getID int64
	get := &cobra.Command{
		Use:   "get",
		Short: "Mostrar una región por id",
		RunE: func(c *cobra.Command, args []string) error {
			r, err := (*a).regions.Get(c.Context(), getID)
			if err != nil {
				return err
			}
			return printJSON(r)
		},
	}
	get.Flags().Int64Var(&getID, "id", 0, "Id de la región")
	_ = get.MarkFlagRequired("id")

	var createIn repository.CreateRegionInput
	create := &cobra.Command{
		Use:   "create",
		Short: "Crear una región",
		RunE: func(c *cobra.Command, args []string) error {
			id, err := (*a).regions.Create(c.Context(), createIn)
			if err != nil {
				return err
			}
			return printJSON(map[string]int64{"id": id})
		},
	}
	create.Flags().StringVar(&createIn.Code, "code", "", "Código (2 letras)")
	create.Flags().StringVar(&createIn.Name, "name", "", "Nombre")
	_ = create.MarkFlagRequired("code")
	_ = create.MarkFlagRequired("name")

	var updateID int64
	var updateIn repository.UpdateRegionInput
	update := &cobra.Command{
		Use:   "update",
		Short: "Actualizar una región",
		RunE: func(c *cobra.Command, args []string) error {
			return (*a).regions.Update(c.Context(), updateID, updateIn)
		},
	}
	update.Flags().Int64Var(&updateID, "id", 0, "Id de la región")
	update.Flags().StringVar(&updateIn.Code, "code", "", "Código (2 letras)")
	update.Flags().StringVar(&updateIn.Name, "name", "", "Nombre")
	_ = update.MarkFlagRequired("id")
	_ = update.MarkFlagRequired("code")
	_ = update.MarkFlagRequired("name")

	var deleteID int64
	del := &cobra.Command{
		Use:   "delete",
		Short: "Eliminar una región (sus provincias caen en cascada)",
		RunE: func(c *cobra.Command, args []string) error {
			return (*a).regions.Delete(c.Context(), deleteID)
		},
	}
	del.Flags().Int64Var(&deleteID, "id", 0, "Id de la región")
	_ = del.MarkFlagRequired("id")

	cmd.AddCommand(list, get, create, update, del)
	return cmd
}

func provincesCmd(a **app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "provinces",
		Short: "Gestión de provincias",
	}

	var listReq repository.PageRequest
	list := &cobra.Command{
		Use:   "list",
		Short: "Listar provincias con el nombre de su región",
		RunE: func(c *cobra.Command, args []string) error {
			page, err := (*a).provinces.List(c.Context(), listReq)
			if err != nil {
				return err
			}
			return printJSON(page)
		},
	}
	pageFlags(list, &listReq)

	var getID int64
	get := &cobra.Command{
		Use:   "get",
		Short: "Mostrar una provincia por id",
		RunE: func(c *cobra.Command, args []string) error {
			p, err := (*a).provinces.Get(c.Context(), getID)
			if err != nil {
				return err
			}
			return printJSON(p)
		},
	}
	get.Flags().Int64Var(&getID, "id", 0, "Id de la provincia")
	_ = get.MarkFlagRequired("id")

	var createIn repository.CreateProvinceInput
	create := &cobra.Command{
		Use:   "create",
		Short: "Crear una provincia en una región",
		RunE: func(c *cobra.Command, args []string) error {
			id, err := (*a).provinces.Create(c.Context(), createIn)
			if err != nil {
				return err
			}
			return printJSON(map[string]int64{"id": id})
		},
	}
	create.Flags().StringVar(&createIn.Code, "code", "", "Código (2 letras)")
	create.Flags().StringVar(&createIn.Name, "name", "", "Nombre")
	create.Flags().Int64Var(&createIn.RegionID, "region-id", 0, "Id de la región")
	_ = create.MarkFlagRequired("code")
	_ = create.MarkFlagRequired("name")
	_ = create.MarkFlagRequired("region-id")

	var updateID int64
	var updateIn repository.UpdateProvinceInput
	update := &cobra.Command{
		Use:   "update",
		Short: "Actualizar una provincia (puede cambiar de región)",
		RunE: func(c *cobra.Command, args []string) error {
			return (*a).provinces.Update(c.Context(), updateID, updateIn)
		},
	}
	update.Flags().Int64Var(&updateID, "id", 0, "Id de la provincia")
	update.Flags().StringVar(&updateIn.Code, "code", "", "Código (2 letras)")
	update.Flags().StringVar(&updateIn.Name, "name", "", "Nombre")
	update.Flags().Int64Var(&updateIn.RegionID, "region-id", 0, "Id de la región")
	_ = update.MarkFlagRequired("id")
	_ = update.MarkFlagRequired("code")
	_ = update.MarkFlagRequired("name")
	_ = update.MarkFlagRequired("region-id")

	var deleteID int64
	del := &cobra.Command{
		Use:   "delete",
		Short: "Eliminar una provincia",
		RunE: func(c *cobra.Command, args []string) error {
			return (*a).provinces.Delete(c.Context(), deleteID)
		},
	}
	del.Flags().Int64Var(&deleteID, "id", 0, "Id de la provincia")
	_ = del.MarkFlagRequired("id")

	cmd.AddCommand(list, get, create, update, del)
	return cmd
}
